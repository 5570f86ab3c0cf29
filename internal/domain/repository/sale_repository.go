package repository

import "github.com/jhoicas/Crm-api/internal/domain/entity"

// SaleRepository puerto de persistencia para Sale y sus líneas.
// Create asigna el OrderNumber llamando a la función next_sale_number de la
// base de datos y deja el valor en la entidad. ListByBusiness devuelve la
// página pedida y el total de ventas del negocio (para paginar).
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, []*entity.SaleItem, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Sale, int, error)
}
