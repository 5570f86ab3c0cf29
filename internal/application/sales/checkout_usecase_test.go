package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// fakeProductRepo repositorio de productos en memoria para las pruebas.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetByBusinessAndSKU(businessID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.BusinessID == businessID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) ListLowStock(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) ListOutOfStock(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) CountByStockLevel(string) (*repository.StockCounts, error) {
	return &repository.StockCounts{}, nil
}
func (r *fakeProductRepo) DecrementStock(productID string, qty int) error {
	p, ok := r.products[productID]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

// fakeSaleRepo repositorio de ventas en memoria. ListByBusiness respeta
// limit/offset igual que el adaptador real, en orden de alta.
type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items map[string][]*entity.SaleItem
	order []string
	seq   int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale), items: make(map[string][]*entity.SaleItem)}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	r.seq++
	sale.OrderNumber = "V-" + string(rune('0'+r.seq))
	r.sales[sale.ID] = sale
	r.items[sale.ID] = items
	r.order = append(r.order, sale.ID)
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	return r.sales[id], r.items[id], nil
}
func (r *fakeSaleRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Sale, int, error) {
	all := make([]*entity.Sale, 0, len(r.order))
	for _, id := range r.order {
		if s := r.sales[id]; s.BusinessID == businessID {
			all = append(all, s)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// fakeTxRunner ejecuta el callback directo sobre los fakes. Si fn falla,
// descarta la venta simulando el rollback.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
}

func (r *fakeTxRunner) RunCheckout(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	backup := make(map[string]int, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		backup[id] = p.Stock
	}
	if err := fn(r.productRepo, r.saleRepo); err != nil {
		for id, stock := range backup {
			r.productRepo.products[id].Stock = stock
		}
		return err
	}
	return nil
}

func producto(id, name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:       id,
		SKU:      id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
}

func setupCheckout(t *testing.T, products ...*entity.Product) (*CartUseCase, *CheckoutUseCase, *fakeProductRepo, *fakeSaleRepo) {
	t.Helper()
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	cart := NewCartUseCase(productRepo, decimal.RequireFromString("0.16"))
	checkout := NewCheckoutUseCase(cart, &fakeTxRunner{productRepo: productRepo, saleRepo: saleRepo}, saleRepo, nil, nil)
	return cart, checkout, productRepo, saleRepo
}

// TestCheckout_CarritoVacioRechazado el checkout con carrito vacío no crea venta.
func TestCheckout_CarritoVacioRechazado(t *testing.T) {
	_, checkout, _, saleRepo := setupCheckout(t)

	_, err := checkout.Checkout(context.Background(), "user-1", "biz-1", dto.CheckoutRequest{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, saleRepo.sales)
}

// TestCheckout_PersisteTotalesYDescuentaStock una venta de 2×100 + 1×50 con
// 16% de impuesto persiste 250/40/290 y descuenta el stock de ambos productos.
func TestCheckout_PersisteTotalesYDescuentaStock(t *testing.T) {
	cart, checkout, productRepo, saleRepo := setupCheckout(t,
		producto("p1", "Silla", "100", 10),
		producto("p2", "Mesa", "50", 5),
	)

	_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = cart.Add("user-1", dto.AddToCartRequest{ProductID: "p2"})
	require.NoError(t, err)

	sale, err := checkout.Checkout(context.Background(), "user-1", "biz-1", dto.CheckoutRequest{})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("250")))
	assert.True(t, sale.Tax.Equal(decimal.RequireFromString("40")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("290")))
	assert.NotEmpty(t, sale.OrderNumber)
	assert.Len(t, sale.Items, 2)

	assert.Equal(t, 8, productRepo.products["p1"].Stock)
	assert.Equal(t, 4, productRepo.products["p2"].Stock)
	assert.Len(t, saleRepo.sales, 1)

	// El carrito queda vacío tras el checkout.
	current, err := cart.Get("user-1")
	require.NoError(t, err)
	assert.Empty(t, current.Lines)
}

// TestCheckout_StockInsuficienteRevierteTodo si un producto se quedó sin
// stock entre el armado del carrito y el checkout, no se persiste nada y el
// carrito queda intacto.
func TestCheckout_StockInsuficienteRevierteTodo(t *testing.T) {
	cart, checkout, productRepo, saleRepo := setupCheckout(t,
		producto("p1", "Silla", "100", 2),
		producto("p2", "Mesa", "50", 1),
	)

	_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)
	_, err = cart.Add("user-1", dto.AddToCartRequest{ProductID: "p2"})
	require.NoError(t, err)

	// Otro cajero vendió la mesa mientras tanto.
	productRepo.products["p2"].Stock = 0

	_, err = checkout.Checkout(context.Background(), "user-1", "biz-1", dto.CheckoutRequest{})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 2, productRepo.products["p1"].Stock, "el descuento parcial se revierte")

	current, err := cart.Get("user-1")
	require.NoError(t, err)
	assert.Len(t, current.Lines, 2, "el carrito sobrevive para corregirlo")
}

// TestCheckout_VentaVinculadaADeal el deal_id opcional viaja a la venta.
func TestCheckout_VentaVinculadaADeal(t *testing.T) {
	cart, checkout, _, _ := setupCheckout(t, producto("p1", "Silla", "100", 10))

	_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)

	dealID := "deal-7"
	sale, err := checkout.Checkout(context.Background(), "user-1", "biz-1", dto.CheckoutRequest{DealID: &dealID})
	require.NoError(t, err)
	require.NotNil(t, sale.DealID)
	assert.Equal(t, "deal-7", *sale.DealID)
}

// TestListSales_PaginaSobreElTotal con 7 ventas y páginas de 5, el listado
// reporta total=7 y 2 páginas; la página 2 trae las 2 restantes.
func TestListSales_PaginaSobreElTotal(t *testing.T) {
	cart, checkout, _, _ := setupCheckout(t, producto("p1", "Silla", "100", 50))

	for i := 0; i < 7; i++ {
		_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
		require.NoError(t, err)
		_, err = checkout.Checkout(context.Background(), "user-1", "biz-1", dto.CheckoutRequest{})
		require.NoError(t, err)
	}

	page1, err := checkout.ListSales("biz-1", dto.PageRequest{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 5)
	assert.Equal(t, 7, page1.Page.Total)
	assert.Equal(t, 2, page1.Page.TotalPages)

	page2, err := checkout.ListSales("biz-1", dto.PageRequest{Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 2)
	assert.Equal(t, 7, page2.Page.Total)
}

// TestCart_CarritosPorUsuarioIndependientes cada usuario tiene su propio carrito.
func TestCart_CarritosPorUsuarioIndependientes(t *testing.T) {
	cart, _, _, _ := setupCheckout(t, producto("p1", "Silla", "100", 10))

	_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)

	other, err := cart.Get("user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}

// TestCart_ProductoInactivoNoSeAgrega un producto desactivado no entra al carrito.
func TestCart_ProductoInactivoNoSeAgrega(t *testing.T) {
	p := producto("p1", "Silla", "100", 10)
	p.IsActive = false
	cart, _, _, _ := setupCheckout(t, p)

	_, err := cart.Add("user-1", dto.AddToCartRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
