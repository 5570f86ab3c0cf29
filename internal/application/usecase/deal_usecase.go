package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// DealUseCase casos de uso de deals: alta, edición, archivado y movimiento
// entre columnas.
type DealUseCase struct {
	dealRepo  repository.DealRepository
	stageRepo repository.StageRepository
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(dealRepo repository.DealRepository, stageRepo repository.StageRepository) *DealUseCase {
	return &DealUseCase{dealRepo: dealRepo, stageRepo: stageRepo}
}

// Create crea un deal abierto. customer_name y value son obligatorios (un
// deal sin monto no aporta nada al pipeline). Si no llega etapa, cae en la
// etapa de entrada del pipeline (is_input), o en la primera por posición si
// ninguna está marcada.
func (uc *DealUseCase) Create(businessID, pipelineID string, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.CustomerName == "" || !in.Value.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	stageID := in.StageID
	if stageID != nil {
		stage, err := uc.stageRepo.GetByID(*stageID)
		if err != nil {
			return nil, err
		}
		if stage == nil || stage.PipelineID != pipelineID {
			return nil, domain.ErrInvalidInput
		}
	} else {
		input, err := uc.inputStage(pipelineID)
		if err != nil {
			return nil, err
		}
		if input != nil {
			stageID = &input.ID
		}
	}
	now := time.Now()
	deal := &entity.Deal{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		PipelineID:   pipelineID,
		StageID:      stageID,
		CustomerName: in.CustomerName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Value:        in.Value,
		Status:       entity.DealStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// GetByID obtiene un deal por ID.
func (uc *DealUseCase) GetByID(id string) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	return toDealResponse(deal), nil
}

// Update edición parcial del deal.
func (uc *DealUseCase) Update(id string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	if in.CustomerName != nil {
		deal.CustomerName = *in.CustomerName
	}
	if in.ContactEmail != nil {
		deal.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		deal.ContactPhone = *in.ContactPhone
	}
	if in.Value != nil {
		deal.Value = *in.Value
	}
	if in.IsRevenue != nil {
		deal.IsRevenue = *in.IsRevenue
	}
	deal.UpdatedAt = time.Now()
	if err := uc.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// Archive saca el deal del tablero sin borrarlo: status pasa a archived y la
// etapa queda en NULL. Archivar dos veces es idempotente.
func (uc *DealUseCase) Archive(id string) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	if deal.Status == entity.DealStatusArchived {
		return toDealResponse(deal), nil
	}
	deal.Status = entity.DealStatusArchived
	deal.StageID = nil
	deal.UpdatedAt = time.Now()
	if err := uc.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// MoveToStage mueve el deal a otra columna del mismo pipeline. El UPDATE de
// la etapa se confirma antes de responder: el tablero solo pinta el cambio
// cuando ya está persistido. Entrar a una etapa marcada como revenue marca el
// deal como ganado (is_revenue + closed_at); salir de ella lo desmarca.
func (uc *DealUseCase) MoveToStage(id string, in dto.MoveDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, nil
	}
	if deal.Status != entity.DealStatusOpen {
		return nil, domain.ErrConflict
	}
	stage, err := uc.stageRepo.GetByID(in.StageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}
	if stage.PipelineID != deal.PipelineID {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.dealRepo.UpdateStage(deal.ID, &stage.ID); err != nil {
		return nil, err
	}
	deal.StageID = &stage.ID
	if stage.IsRevenue != deal.IsRevenue {
		deal.IsRevenue = stage.IsRevenue
		if stage.IsRevenue {
			now := time.Now()
			deal.ClosedAt = &now
		} else {
			deal.ClosedAt = nil
		}
		deal.UpdatedAt = time.Now()
		if err := uc.dealRepo.Update(deal); err != nil {
			return nil, err
		}
	}
	return toDealResponse(deal), nil
}

// inputStage resuelve la etapa donde caen los deals nuevos.
func (uc *DealUseCase) inputStage(pipelineID string) (*entity.Stage, error) {
	stages, err := uc.stageRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		if s.IsInput {
			return s, nil
		}
	}
	if len(stages) > 0 {
		return stages[0], nil
	}
	return nil, nil
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	if d == nil {
		return nil
	}
	return &dto.DealResponse{
		ID:           d.ID,
		BusinessID:   d.BusinessID,
		PipelineID:   d.PipelineID,
		StageID:      d.StageID,
		CustomerName: d.CustomerName,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Value:        d.Value,
		Status:       d.Status,
		IsRevenue:    d.IsRevenue,
		ClosedAt:     d.ClosedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
