package sales

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
	domainsales "github.com/jhoicas/Crm-api/internal/domain/sales"
)

// CartUseCase mantiene el carrito del punto de venta por usuario. Los
// carritos viven solo en memoria: un reinicio del servidor los descarta, que
// es exactamente el comportamiento del carrito en la página.
type CartUseCase struct {
	productRepo repository.ProductRepository
	taxRate     decimal.Decimal

	mu    sync.Mutex
	carts map[string]*domainsales.Cart // userID → carrito
}

// NewCartUseCase construye el caso de uso con la tasa de impuesto configurada.
func NewCartUseCase(productRepo repository.ProductRepository, taxRate decimal.Decimal) *CartUseCase {
	return &CartUseCase{
		productRepo: productRepo,
		taxRate:     taxRate,
		carts:       make(map[string]*domainsales.Cart),
	}
}

// Add agrega una unidad del producto al carrito del usuario. Busca el
// producto para tomar el snapshot de precio y stock disponible.
func (uc *CartUseCase) Add(userID string, in dto.AddToCartRequest) (*dto.CartResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart := uc.cartLocked(userID)
	if err := cart.Add(product); err != nil {
		return nil, err
	}
	return uc.toCartResponseLocked(cart), nil
}

// SetQuantity fija la cantidad de una línea del carrito.
func (uc *CartUseCase) SetQuantity(userID, productID string, in dto.UpdateCartQuantityRequest) (*dto.CartResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart := uc.cartLocked(userID)
	if err := cart.SetQuantity(productID, in.Quantity); err != nil {
		return nil, err
	}
	return uc.toCartResponseLocked(cart), nil
}

// Remove quita la línea del producto del carrito.
func (uc *CartUseCase) Remove(userID, productID string) (*dto.CartResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart := uc.cartLocked(userID)
	cart.Remove(productID)
	return uc.toCartResponseLocked(cart), nil
}

// Get devuelve el carrito actual del usuario con sus totales.
func (uc *CartUseCase) Get(userID string) (*dto.CartResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.toCartResponseLocked(uc.cartLocked(userID)), nil
}

// Clear descarta el carrito del usuario.
func (uc *CartUseCase) Clear(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.carts, userID)
}

// snapshot entrega las líneas y totales actuales para el checkout.
func (uc *CartUseCase) snapshot(userID string) ([]domainsales.CartLine, domainsales.Totals) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cart := uc.cartLocked(userID)
	return cart.Lines(), cart.Totals(uc.taxRate)
}

func (uc *CartUseCase) cartLocked(userID string) *domainsales.Cart {
	cart, ok := uc.carts[userID]
	if !ok {
		cart = domainsales.NewCart()
		uc.carts[userID] = cart
	}
	return cart
}

func (uc *CartUseCase) toCartResponseLocked(cart *domainsales.Cart) *dto.CartResponse {
	lines := cart.Lines()
	totals := cart.Totals(uc.taxRate)
	items := make([]dto.CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			LineTotal: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	return &dto.CartResponse{
		Lines:    items,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}
