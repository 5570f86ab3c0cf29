package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. El número de orden lo asigna la
// función next_sale_number de la base de datos y se devuelve en la entidad.
func (r *SaleRepo) Create(s *entity.Sale, items []*entity.SaleItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, business_id, deal_id, order_number, subtotal, tax, total, created_at)
		VALUES ($1, $2, $3, next_sale_number($2), $4, $5, $6, $7)
		RETURNING order_number`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.BusinessID, s.DealID, s.Subtotal, s.Tax, s.Total, s.CreatedAt,
	).Scan(&s.OrderNumber)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, name, price, quantity, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, s.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, business_id, deal_id, order_number, subtotal, tax, total, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &s.BusinessID, &s.DealID, &s.OrderNumber, &s.Subtotal, &s.Tax, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, name, price, quantity, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY name`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.LineTotal); err != nil {
			return nil, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return &s, items, rows.Err()
}

// ListByBusiness lista las ventas de un negocio, más reciente primero.
// Devuelve además el total sin paginar para calcular las páginas.
func (r *SaleRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Sale, int, error) {
	ctx := context.Background()

	var total int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE business_id = $1`, businessID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, business_id, deal_id, order_number, subtotal, tax, total, created_at
		FROM sales WHERE business_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		businessID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.DealID, &s.OrderNumber, &s.Subtotal, &s.Tax, &s.Total, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
