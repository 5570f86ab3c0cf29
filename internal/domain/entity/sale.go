package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una transacción de venta confirmada desde el punto de venta.
// OrderNumber lo asigna la función next_sale_number de la base de datos.
type Sale struct {
	ID          string
	BusinessID  string
	DealID      *string // referencia opcional al deal que originó la venta
	OrderNumber string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// SaleItem es una línea de la venta: snapshot de precio y nombre al momento
// del checkout, independiente de cambios posteriores del producto.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}
