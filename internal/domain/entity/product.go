package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación derivada del stock. No se almacena: se calcula al leer.
const (
	StockStatusIn  = "in_stock"
	StockStatusLow = "low_stock"
	StockStatusOut = "out_of_stock"
)

// Product representa un producto del inventario del negocio.
// IsActive implementa el soft delete: desactivar en vez de borrar la fila.
type Product struct {
	ID          string
	BusinessID  string
	CategoryID  *string // nullable: producto sin categoría
	SKU         string  // código único por negocio
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	MinStock    *int // umbral de stock bajo; nil = sin umbral
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockStatus clasifica el producto según su stock:
// stock=0 → out_of_stock; 0<stock≤min → low_stock; resto → in_stock.
func (p *Product) StockStatus() string {
	if p.Stock == 0 {
		return StockStatusOut
	}
	if p.MinStock != nil && p.Stock <= *p.MinStock {
		return StockStatusLow
	}
	return StockStatusIn
}

// Category agrupa productos. El borrado es inmediato y duro; los productos
// que la referencian quedan con CategoryID en NULL.
type Category struct {
	ID         string
	BusinessID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
