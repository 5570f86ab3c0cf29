package repository

import "github.com/jhoicas/Crm-api/internal/domain/entity"

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndBusiness(email, businessID string) (*entity.User, error)
}

// APIKeyRepository puerto para credenciales de integraciones (user_api_keys).
type APIKeyRepository interface {
	Upsert(key *entity.APIKey) error
	GetByUserAndProvider(userID, provider string) (*entity.APIKey, error)
	DeleteByUserAndProvider(userID, provider string) error
}
