package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL (usable con pool o tx).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios. Pasar pool o tx (Querier).
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un nuevo negocio.
func (r *BusinessRepo) Create(b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.OwnerID, b.Name, b.Phone, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := `SELECT id, owner_id, name, phone, created_at, updated_at FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.OwnerID, &b.Name, &b.Phone, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// ListByOwner lista los negocios de un usuario.
func (r *BusinessRepo) ListByOwner(ownerID string) ([]*entity.Business, error) {
	query := `SELECT id, owner_id, name, phone, created_at, updated_at FROM businesses WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza nombre y teléfono del negocio.
func (r *BusinessRepo) Update(b *entity.Business) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE businesses SET name = $2, phone = $3, updated_at = $4 WHERE id = $1`,
		b.ID, b.Name, b.Phone, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}
