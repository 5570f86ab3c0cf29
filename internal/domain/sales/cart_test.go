package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/sales"
)

func producto(id string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:    id,
		Name:  "producto " + id,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
}

// Agregar un producto nuevo crea la línea con cantidad 1.
func TestCart_AddProductoNuevo(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.Add(producto("p1", 100, 5)))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

// Agregar el mismo producto incrementa la cantidad de la línea existente.
func TestCart_AddIncrementaCantidad(t *testing.T) {
	cart := sales.NewCart()
	p := producto("p1", 100, 5)
	require.NoError(t, cart.Add(p))
	require.NoError(t, cart.Add(p))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

// Producto sin stock se rechaza y el carrito queda intacto.
func TestCart_AddSinStockRechazado(t *testing.T) {
	cart := sales.NewCart()
	err := cart.Add(producto("p1", 100, 0))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, cart.Len())
}

// Línea ya en el tope de stock: el incremento se rechaza y la cantidad no cambia.
func TestCart_AddEnTopeDeStockRechazado(t *testing.T) {
	cart := sales.NewCart()
	p := producto("p1", 100, 2)
	require.NoError(t, cart.Add(p))
	require.NoError(t, cart.Add(p))

	err := cart.Add(p)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

// Decrementar una línea con cantidad 1 la deja en 1 (no se auto-elimina).
func TestCart_SetQuantityClampEnUno(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.Add(producto("p1", 100, 5)))

	require.NoError(t, cart.SetQuantity("p1", 0))
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

// Cantidad por encima del stock disponible se rechaza.
func TestCart_SetQuantityPorEncimaDelStock(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.Add(producto("p1", 100, 3)))

	err := cart.SetQuantity("p1", 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

// Remove sí elimina la línea; sobre un id inexistente no falla.
func TestCart_Remove(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.Add(producto("p1", 100, 5)))

	cart.Remove("p1")
	assert.Equal(t, 0, cart.Len())

	cart.Remove("no-existe") // no debe entrar en pánico
}

// Totales del ejemplo de referencia: [{100×2}, {50×1}] → 250 / 40 / 290 con IVA 16%.
func TestCart_Totales(t *testing.T) {
	cart := sales.NewCart()
	p1 := producto("p1", 100, 10)
	p2 := producto("p2", 50, 10)
	require.NoError(t, cart.Add(p1))
	require.NoError(t, cart.SetQuantity("p1", 2))
	require.NoError(t, cart.Add(p2))

	taxRate := decimal.RequireFromString("0.16")
	tot := cart.Totals(taxRate)

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal=%s", tot.Subtotal)
	assert.True(t, tot.Tax.Equal(decimal.NewFromInt(40)), "tax=%s", tot.Tax)
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(290)), "total=%s", tot.Total)
}

// Carrito vacío totaliza en cero.
func TestCart_TotalesVacio(t *testing.T) {
	cart := sales.NewCart()
	tot := cart.Totals(decimal.RequireFromString("0.16"))
	assert.True(t, tot.Total.IsZero())
}
