package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del inventario.
// El borrado es lógico: Deactivate marca is_active=false y el producto sale
// de todos los listados.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el SKU ya
// existe en el negocio.
func (uc *ProductUseCase) Create(businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByBusinessAndSKU(businessID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		CategoryID:  in.CategoryID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El SKU no se modifica después del alta.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.MinStock != nil {
		product.MinStock = in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del negocio según el nivel de stock pedido: el filtro
// "low" y "out" consultan sus vistas dedicadas, "all" la tabla. Los conteos
// por nivel acompañan siempre la página.
func (uc *ProductUseCase) List(businessID string, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		BusinessID: businessID,
		Search:     in.Search,
		Limit:      in.PageSize,
		Offset:     in.Offset(),
	}

	var (
		list  []*entity.Product
		total int
		err   error
	)
	switch in.Stock {
	case "", dto.StockFilterAll:
		list, total, err = uc.repo.List(filter)
	case dto.StockFilterLow:
		list, total, err = uc.repo.ListLowStock(filter)
	case dto.StockFilterOut:
		list, total, err = uc.repo.ListOutOfStock(filter)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	counts, err := uc.repo.CountByStockLevel(businessID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(in.Page, in.PageSize, total),
		Counts: dto.StockCountsResponse{
			Total:      counts.Total,
			LowStock:   counts.LowStock,
			OutOfStock: counts.OutOfStock,
		},
	}, nil
}

// Delete desactiva el producto (soft delete). Idempotente.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Deactivate(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		StockStatus: p.StockStatus(),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
