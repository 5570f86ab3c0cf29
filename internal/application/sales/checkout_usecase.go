package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// CheckoutTxRunner ejecuta fn dentro de una transacción con los repos de
// productos y ventas atados a ella: el descuento de stock y el alta de la
// venta viajan juntos o no viajan.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptPDFGenerator genera el recibo de una venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem, business *entity.Business) ([]byte, error)
}

// CheckoutUseCase confirma la venta del carrito: descuenta stock, persiste
// la venta con sus líneas y vacía el carrito, todo dentro de una transacción.
type CheckoutUseCase struct {
	cart         *CartUseCase
	txRunner     CheckoutTxRunner
	saleRepo     repository.SaleRepository
	businessRepo repository.BusinessRepository
	receipts     ReceiptPDFGenerator
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	cart *CartUseCase,
	txRunner CheckoutTxRunner,
	saleRepo repository.SaleRepository,
	businessRepo repository.BusinessRepository,
	receipts ReceiptPDFGenerator,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cart:         cart,
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		businessRepo: businessRepo,
		receipts:     receipts,
	}
}

// Checkout confirma la venta del carrito actual del usuario. Con el carrito
// vacío devuelve domain.ErrEmptyCart. Si algún producto ya no tiene stock
// suficiente la transacción entera se revierte con ErrInsufficientStock y el
// carrito queda intacto para corregirlo.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID, businessID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	lines, totals := uc.cart.snapshot(userID)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	sale := &entity.Sale{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		DealID:     in.DealID,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		CreatedAt:  time.Now(),
	}
	items := make([]*entity.SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			LineTotal: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	err := uc.txRunner.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, item := range items {
			if err := productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.Create(sale, items)
	})
	if err != nil {
		return nil, err
	}

	uc.cart.Clear(userID)
	return toSaleResponse(sale, items), nil
}

// GetSale obtiene una venta confirmada con sus líneas.
func (uc *CheckoutUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, items, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista las ventas del negocio, más reciente primero. La paginación
// se calcula sobre el total del negocio, no sobre la página devuelta.
func (uc *CheckoutUseCase) ListSales(businessID string, in dto.PageRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.saleRepo.ListByBusiness(businessID, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.PageSize, total),
	}, nil
}

// Receipt genera el PDF del recibo de una venta.
func (uc *CheckoutUseCase) Receipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, items, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	business, err := uc.businessRepo.GetByID(sale.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceiptPDF(ctx, sale, items, business)
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		DealID:      s.DealID,
		OrderNumber: s.OrderNumber,
		Subtotal:    s.Subtotal,
		Tax:         s.Tax,
		Total:       s.Total,
		Items:       []dto.SaleItemResponse{},
		CreatedAt:   s.CreatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return out
}
