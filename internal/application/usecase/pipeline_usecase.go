package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// PipelineUseCase casos de uso de pipelines: CRUD (sin delete), tablero y métricas.
type PipelineUseCase struct {
	pipelineRepo repository.PipelineRepository
	stageRepo    repository.StageRepository
	dealRepo     repository.DealRepository
	metricsRepo  repository.MetricsRepository
}

// NewPipelineUseCase construye el caso de uso.
func NewPipelineUseCase(
	pipelineRepo repository.PipelineRepository,
	stageRepo repository.StageRepository,
	dealRepo repository.DealRepository,
	metricsRepo repository.MetricsRepository,
) *PipelineUseCase {
	return &PipelineUseCase{
		pipelineRepo: pipelineRepo,
		stageRepo:    stageRepo,
		dealRepo:     dealRepo,
		metricsRepo:  metricsRepo,
	}
}

// Create crea un pipeline vacío (sin etapas).
func (uc *PipelineUseCase) Create(businessID string, in dto.CreatePipelineRequest) (*dto.PipelineResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pipeline := &entity.Pipeline{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.pipelineRepo.Create(pipeline); err != nil {
		return nil, err
	}
	return toPipelineResponse(pipeline), nil
}

// GetByID obtiene un pipeline por ID.
func (uc *PipelineUseCase) GetByID(id string) (*dto.PipelineResponse, error) {
	pipeline, err := uc.pipelineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, nil
	}
	return toPipelineResponse(pipeline), nil
}

// List lista los pipelines del negocio.
func (uc *PipelineUseCase) List(businessID string) ([]dto.PipelineResponse, error) {
	list, err := uc.pipelineRepo.ListByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PipelineResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPipelineResponse(p))
	}
	return items, nil
}

// Update edición parcial del pipeline, incluida la configuración de mensajería.
func (uc *PipelineUseCase) Update(id string, in dto.UpdatePipelineRequest) (*dto.PipelineResponse, error) {
	pipeline, err := uc.pipelineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, nil
	}
	if in.Name != nil {
		pipeline.Name = *in.Name
	}
	if in.Description != nil {
		pipeline.Description = *in.Description
	}
	if in.MessagingEnabled != nil {
		pipeline.MessagingEnabled = *in.MessagingEnabled
	}
	if in.PhoneNumberID != nil {
		pipeline.PhoneNumberID = *in.PhoneNumberID
	}
	if in.DisplayPhone != nil {
		pipeline.DisplayPhone = *in.DisplayPhone
	}
	pipeline.UpdatedAt = time.Now()
	if err := uc.pipelineRepo.Update(pipeline); err != nil {
		return nil, err
	}
	return toPipelineResponse(pipeline), nil
}

// Board arma el tablero completo: etapas por posición, cada una con sus deals
// abiertos en orden de llegada. Los deals sin etapa no aparecen.
func (uc *PipelineUseCase) Board(pipelineID string) (*dto.BoardResponse, error) {
	pipeline, err := uc.pipelineRepo.GetByID(pipelineID)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, nil
	}
	stages, err := uc.stageRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	deals, err := uc.dealRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}

	byStage := make(map[string][]dto.DealResponse, len(stages))
	for _, d := range deals {
		if d.StageID == nil {
			continue
		}
		byStage[*d.StageID] = append(byStage[*d.StageID], *toDealResponse(d))
	}
	columns := make([]dto.BoardColumn, 0, len(stages))
	for _, s := range stages {
		dealsOfStage := byStage[s.ID]
		if dealsOfStage == nil {
			dealsOfStage = []dto.DealResponse{}
		}
		columns = append(columns, dto.BoardColumn{
			Stage: *toStageResponse(s),
			Deals: dealsOfStage,
		})
	}
	return &dto.BoardResponse{
		Pipeline: *toPipelineResponse(pipeline),
		Columns:  columns,
	}, nil
}

// Metrics calcula las métricas del pipeline: conteo y valor por etapa más el
// total ganado (suma de las etapas marcadas is_revenue).
func (uc *PipelineUseCase) Metrics(pipelineID string) (*dto.PipelineMetricsResponse, error) {
	pipeline, err := uc.pipelineRepo.GetByID(pipelineID)
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, nil
	}
	rows, err := uc.metricsRepo.PipelineMetrics(pipelineID)
	if err != nil {
		return nil, err
	}
	stages := make([]dto.StageMetricsResponse, 0, len(rows))
	wonTotal := decimal.Zero
	for _, r := range rows {
		stages = append(stages, dto.StageMetricsResponse{
			StageID:   r.StageID,
			StageName: r.StageName,
			IsRevenue: r.IsRevenue,
			DealCount: r.DealCount,
			Value:     r.Value,
		})
		if r.IsRevenue {
			wonTotal = wonTotal.Add(r.Value)
		}
	}
	return &dto.PipelineMetricsResponse{Stages: stages, WonTotal: wonTotal}, nil
}

func toPipelineResponse(p *entity.Pipeline) *dto.PipelineResponse {
	if p == nil {
		return nil
	}
	return &dto.PipelineResponse{
		ID:               p.ID,
		BusinessID:       p.BusinessID,
		Name:             p.Name,
		Description:      p.Description,
		MessagingEnabled: p.MessagingEnabled,
		PhoneNumberID:    p.PhoneNumberID,
		DisplayPhone:     p.DisplayPhone,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
