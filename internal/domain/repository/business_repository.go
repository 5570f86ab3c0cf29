package repository

import "github.com/jhoicas/Crm-api/internal/domain/entity"

// BusinessRepository puerto de persistencia para Business.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	ListByOwner(ownerID string) ([]*entity.Business, error)
	Update(business *entity.Business) error
}
