package repository

import "github.com/jhoicas/Crm-api/internal/domain/entity"

// ProductFilter filtro del listado de productos. Search aplica sobre nombre
// y SKU; Limit/Offset son la paginación del lado del servidor.
type ProductFilter struct {
	BusinessID string
	Search     string
	Limit      int
	Offset     int
}

// StockCounts conteos agregados por nivel de stock (consulta separada del listado).
type StockCounts struct {
	Total      int
	LowStock   int
	OutOfStock int
}

// ProductRepository puerto de persistencia para Product.
// ListLowStock y ListOutOfStock consultan vistas de lectura dedicadas
// (low_stock_products, out_of_stock_products), no filtran en memoria.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBusinessAndSKU(businessID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Deactivate(id string) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(filter ProductFilter) ([]*entity.Product, int, error)
	ListOutOfStock(filter ProductFilter) ([]*entity.Product, int, error)
	CountByStockLevel(businessID string) (*StockCounts, error)
	DecrementStock(productID string, qty int) error
}

// CategoryRepository puerto de persistencia para Category. Delete es duro;
// los productos que referencian la categoría quedan con el FK en NULL
// (ON DELETE SET NULL), por lo que nunca falla por referencias.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListByBusiness(businessID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
