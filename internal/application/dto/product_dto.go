package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de stock aceptados por el filtro del listado. Son excluyentes:
// cada nivel consulta su propia vista de lectura.
const (
	StockFilterAll = "all"
	StockFilterLow = "low"
	StockFilterOut = "out"
)

// CreateProductRequest alta de producto (sku y name requeridos).
type CreateProductRequest struct {
	CategoryID  *string         `json:"category_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    *int            `json:"min_stock"`
}

// UpdateProductRequest edición parcial de producto.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"min_stock"`
}

// ProductResponse producto expuesto por la API. StockStatus es derivado,
// nunca almacenado.
type ProductResponse struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	CategoryID  *string         `json:"category_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    *int            `json:"min_stock"`
	StockStatus string          `json:"stock_status"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListRequest parámetros del listado.
type ProductListRequest struct {
	PageRequest
	Search string `query:"search"`
	Stock  string `query:"stock"` // all | low | out
}

// ProductListResponse página de productos más los conteos por nivel.
type ProductListResponse struct {
	Items  []ProductResponse   `json:"items"`
	Page   PageResponse        `json:"page"`
	Counts StockCountsResponse `json:"counts"`
}

// StockCountsResponse conteos agregados por nivel de stock.
type StockCountsResponse struct {
	Total      int `json:"total"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// CreateCategoryRequest alta de categoría (name requerido).
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest edición de categoría.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría expuesta por la API.
type CategoryResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
