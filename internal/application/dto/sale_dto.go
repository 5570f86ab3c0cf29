package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest agrega una unidad del producto al carrito.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

// UpdateCartQuantityRequest fija la cantidad de una línea.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse una línea del carrito.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse el carrito con sus totales.
type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

// CheckoutRequest confirma la venta del carrito actual. DealID opcional
// vincula la venta con el deal que la originó.
type CheckoutRequest struct {
	DealID *string `json:"deal_id"`
}

// SaleItemResponse línea de una venta confirmada.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse venta confirmada: el recibo que ve el cajero.
type SaleResponse struct {
	ID          string             `json:"id"`
	BusinessID  string             `json:"business_id"`
	DealID      *string            `json:"deal_id"`
	OrderNumber string             `json:"order_number"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
	Items       []SaleItemResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
