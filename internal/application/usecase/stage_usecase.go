package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// Direcciones de movimiento de una columna.
const (
	MoveLeft  = "left"
	MoveRight = "right"
)

// TxRunner ejecuta fn dentro de una transacción con un StageRepository atado
// a ella. El swap de posiciones necesita que ambos UPDATE viajen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(stageRepo repository.StageRepository) error) error
}

// StageUseCase casos de uso de etapas: CRUD y reordenamiento por swap.
// Solo admite un reordenamiento en vuelo por pipeline; el segundo recibe
// domain.ErrReorderInFlight y el cliente reintenta tras el refetch.
type StageUseCase struct {
	stageRepo repository.StageRepository
	txRunner  TxRunner

	mu       sync.Mutex
	inFlight map[string]bool // pipelineID → reorden en curso
}

// NewStageUseCase construye el caso de uso.
func NewStageUseCase(stageRepo repository.StageRepository, txRunner TxRunner) *StageUseCase {
	return &StageUseCase{
		stageRepo: stageRepo,
		txRunner:  txRunner,
		inFlight:  make(map[string]bool),
	}
}

// Create crea una etapa al final del tablero: posición = máxima actual + 1.
func (uc *StageUseCase) Create(pipelineID string, in dto.CreateStageRequest) (*dto.StageResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.stageRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	position := 0
	for _, s := range existing {
		if s.Position >= position {
			position = s.Position + 1
		}
	}
	now := time.Now()
	stage := &entity.Stage{
		ID:         uuid.New().String(),
		PipelineID: pipelineID,
		Name:       in.Name,
		Color:      in.Color,
		Position:   position,
		IsInput:    in.IsInput,
		IsRevenue:  in.IsRevenue,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.stageRepo.Create(stage); err != nil {
		return nil, err
	}
	return toStageResponse(stage), nil
}

// GetByID obtiene una etapa por ID.
func (uc *StageUseCase) GetByID(id string) (*dto.StageResponse, error) {
	stage, err := uc.stageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, nil
	}
	return toStageResponse(stage), nil
}

// ListByPipeline lista las etapas del pipeline ordenadas por posición.
func (uc *StageUseCase) ListByPipeline(pipelineID string) ([]dto.StageResponse, error) {
	list, err := uc.stageRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StageResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStageResponse(s))
	}
	return items, nil
}

// Update edición parcial de etapa. La posición no se toca aquí: va por Move.
func (uc *StageUseCase) Update(id string, in dto.UpdateStageRequest) (*dto.StageResponse, error) {
	stage, err := uc.stageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, nil
	}
	if in.Name != nil {
		stage.Name = *in.Name
	}
	if in.Color != nil {
		stage.Color = *in.Color
	}
	if in.IsInput != nil {
		stage.IsInput = *in.IsInput
	}
	if in.IsRevenue != nil {
		stage.IsRevenue = *in.IsRevenue
	}
	stage.UpdatedAt = time.Now()
	if err := uc.stageRepo.Update(stage); err != nil {
		return nil, err
	}
	return toStageResponse(stage), nil
}

// Move intercambia la posición de la etapa con su vecina en la dirección
// indicada. El swap corre en una transacción: o se mueven las dos posiciones
// o ninguna. En el borde del tablero devuelve domain.ErrStageBoundary.
func (uc *StageUseCase) Move(ctx context.Context, id string, in dto.MoveStageRequest) (*dto.StageResponse, error) {
	if in.Direction != MoveLeft && in.Direction != MoveRight {
		return nil, domain.ErrInvalidInput
	}
	stage, err := uc.stageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, nil
	}

	if !uc.acquire(stage.PipelineID) {
		return nil, domain.ErrReorderInFlight
	}
	defer uc.release(stage.PipelineID)

	siblings, err := uc.stageRepo.ListByPipeline(stage.PipelineID)
	if err != nil {
		return nil, err
	}
	neighbor := findNeighbor(siblings, stage.ID, in.Direction)
	if neighbor == nil {
		return nil, domain.ErrStageBoundary
	}

	err = uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository) error {
		if err := stageRepo.UpdatePosition(stage.ID, neighbor.Position); err != nil {
			return err
		}
		return stageRepo.UpdatePosition(neighbor.ID, stage.Position)
	})
	if err != nil {
		return nil, err
	}
	stage.Position, neighbor.Position = neighbor.Position, stage.Position
	return toStageResponse(stage), nil
}

func (uc *StageUseCase) acquire(pipelineID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight[pipelineID] {
		return false
	}
	uc.inFlight[pipelineID] = true
	return true
}

func (uc *StageUseCase) release(pipelineID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, pipelineID)
}

// findNeighbor busca la etapa vecina inmediata por posición. La lista llega
// ordenada por posición ascendente.
func findNeighbor(stages []*entity.Stage, stageID, direction string) *entity.Stage {
	for i, s := range stages {
		if s.ID != stageID {
			continue
		}
		if direction == MoveLeft {
			if i == 0 {
				return nil
			}
			return stages[i-1]
		}
		if i == len(stages)-1 {
			return nil
		}
		return stages[i+1]
	}
	return nil
}

func toStageResponse(s *entity.Stage) *dto.StageResponse {
	if s == nil {
		return nil
	}
	return &dto.StageResponse{
		ID:         s.ID,
		PipelineID: s.PipelineID,
		Name:       s.Name,
		Color:      s.Color,
		Position:   s.Position,
		IsInput:    s.IsInput,
		IsRevenue:  s.IsRevenue,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
