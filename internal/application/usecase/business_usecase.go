package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// BusinessUseCase aplica reglas de negocio para los negocios del usuario.
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso con el puerto de persistencia.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// Create crea un negocio para el usuario autenticado.
func (uc *BusinessUseCase) Create(ownerID string, in dto.CreateBusinessRequest) (*dto.BusinessResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	business := &entity.Business{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// GetByID obtiene un negocio por ID.
func (uc *BusinessUseCase) GetByID(id string) (*dto.BusinessResponse, error) {
	business, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, nil
	}
	return toBusinessResponse(business), nil
}

// ListByOwner lista los negocios del usuario.
func (uc *BusinessUseCase) ListByOwner(ownerID string) ([]dto.BusinessResponse, error) {
	list, err := uc.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BusinessResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBusinessResponse(b))
	}
	return items, nil
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	if b == nil {
		return nil
	}
	return &dto.BusinessResponse{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
