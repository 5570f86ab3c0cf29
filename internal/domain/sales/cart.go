package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
)

// CartLine una línea del carrito: snapshot del producto más la cantidad.
// Stock es el disponible al momento de agregar; acota los incrementos.
type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Stock     int
	Quantity  int
}

// Cart carrito en memoria del punto de venta, con líneas indexadas por
// producto. No se persiste nunca: vive hasta el checkout o el descarte.
type Cart struct {
	lines map[string]*CartLine
	order []string // ids en orden de inserción, para listados estables
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]*CartLine)}
}

// Add agrega una unidad del producto. Si ya hay una línea incrementa su
// cantidad. Rechaza con ErrInsufficientStock si el producto no tiene stock
// o la línea ya alcanzó el disponible; en ese caso el carrito no cambia.
func (c *Cart) Add(p *entity.Product) error {
	if p.Stock == 0 {
		return domain.ErrInsufficientStock
	}
	line, ok := c.lines[p.ID]
	if !ok {
		c.lines[p.ID] = &CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Quantity:  1,
		}
		c.order = append(c.order, p.ID)
		return nil
	}
	if line.Quantity >= line.Stock {
		return domain.ErrInsufficientStock
	}
	line.Quantity++
	return nil
}

// SetQuantity fija la cantidad de una línea existente. Cantidades menores a 1
// se ignoran dejando la línea en su mínimo de una unidad (la línea solo
// desaparece vía Remove). Cantidades por encima del stock se rechazan.
func (c *Cart) SetQuantity(productID string, qty int) error {
	line, ok := c.lines[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if qty < 1 {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		return nil
	}
	if qty > line.Stock {
		return domain.ErrInsufficientStock
	}
	line.Quantity = qty
	return nil
}

// Remove elimina la línea del producto. No falla si no existe.
func (c *Cart) Remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines devuelve las líneas en orden de inserción.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Len cantidad de líneas del carrito.
func (c *Cart) Len() int { return len(c.lines) }

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.lines = make(map[string]*CartLine)
	c.order = nil
}

// Totals resultado del cálculo de totales del carrito.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Totals calcula subtotal = Σ precio×cantidad, tax = subtotal × taxRate y
// total = subtotal + tax, todo en aritmética decimal.
func (c *Cart) Totals(taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
