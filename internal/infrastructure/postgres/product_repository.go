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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Los niveles low/out consultan las vistas low_stock_products y
// out_of_stock_products en lugar de filtrar en memoria.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, business_id, category_id, sku, name, description, price, stock, min_stock, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.CategoryID, &p.SKU, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.MinStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, business_id, category_id, sku, name, description, price, stock, min_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BusinessID, p.CategoryID, p.SKU, p.Name, p.Description,
		p.Price, p.Stock, p.MinStock, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBusinessAndSKU obtiene un producto por negocio y SKU.
func (r *ProductRepo) GetByBusinessAndSKU(businessID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, businessID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto. El stock se modifica solo vía DecrementStock
// (checkout) o vía este Update cuando se edita el producto completo.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, description = $4, price = $5, stock = $6, min_stock = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Deactivate implementa el soft delete: marca is_active = false sin tocar la fila.
func (r *ProductRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// List lista productos activos con búsqueda y paginación del lado del
// servidor. Devuelve también el total para calcular páginas.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	return r.listFrom("products", filter)
}

// ListLowStock consulta la vista de stock bajo.
func (r *ProductRepo) ListLowStock(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	return r.listFrom("low_stock_products", filter)
}

// ListOutOfStock consulta la vista de productos agotados.
func (r *ProductRepo) ListOutOfStock(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	return r.listFrom("out_of_stock_products", filter)
}

// listFrom es el listado común: mismas columnas en la tabla base y en las
// vistas de nivel de stock, así que solo cambia el FROM.
func (r *ProductRepo) listFrom(source string, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` WHERE business_id = $1 AND is_active = true`
	args := []any{filter.BusinessID}
	if filter.Search != "" {
		where += ` AND (name ILIKE $2 OR sku ILIKE $2)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM ` + source + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products (%s): %w", source, err)
	}

	query := `SELECT ` + productColumns + ` FROM ` + source + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products (%s): %w", source, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// CountByStockLevel conteos agregados por nivel de stock (consulta aparte del listado).
func (r *ProductRepo) CountByStockLevel(businessID string) (*repository.StockCounts, error) {
	query := `
		SELECT
			COUNT(*)                                                                AS total,
			COUNT(*) FILTER (WHERE stock > 0 AND min_stock IS NOT NULL AND stock <= min_stock) AS low_stock,
			COUNT(*) FILTER (WHERE stock = 0)                                       AS out_of_stock
		FROM products
		WHERE business_id = $1 AND is_active = true`
	var c repository.StockCounts
	err := r.q.QueryRow(context.Background(), query, businessID).Scan(&c.Total, &c.LowStock, &c.OutOfStock)
	if err != nil {
		return nil, fmt.Errorf("count by stock level: %w", err)
	}
	return &c, nil
}

// DecrementStock descuenta stock con guardia en el WHERE: si no afecta filas
// es porque el stock ya no alcanza (otra sesión vendió primero).
func (r *ProductRepo) DecrementStock(productID string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
