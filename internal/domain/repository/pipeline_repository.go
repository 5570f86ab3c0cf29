package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/domain/entity"
)

// PipelineRepository puerto de persistencia para Pipeline.
// No hay Delete: los pipelines nunca se borran físicamente.
type PipelineRepository interface {
	Create(pipeline *entity.Pipeline) error
	GetByID(id string) (*entity.Pipeline, error)
	ListByBusiness(businessID string) ([]*entity.Pipeline, error)
	Update(pipeline *entity.Pipeline) error
}

// StageRepository puerto de persistencia para Stage.
// UpdatePosition existe aparte de Update porque el swap de posiciones corre
// dentro de una transacción y solo toca esa columna.
type StageRepository interface {
	Create(stage *entity.Stage) error
	GetByID(id string) (*entity.Stage, error)
	ListByPipeline(pipelineID string) ([]*entity.Stage, error)
	Update(stage *entity.Stage) error
	UpdatePosition(stageID string, position int) error
}

// DealRepository puerto de persistencia para Deal.
type DealRepository interface {
	Create(deal *entity.Deal) error
	GetByID(id string) (*entity.Deal, error)
	ListByPipeline(pipelineID string) ([]*entity.Deal, error)
	ListByStage(stageID string) ([]*entity.Deal, error)
	Update(deal *entity.Deal) error
	UpdateStage(dealID string, stageID *string) error
}

// StageMetrics métricas agregadas por etapa de un pipeline.
type StageMetrics struct {
	StageID   string
	StageName string
	IsRevenue bool
	DealCount int
	Value     decimal.Decimal
}

// MetricsRepository consultas de solo lectura para los totales del tablero.
type MetricsRepository interface {
	PipelineMetrics(pipelineID string) ([]StageMetrics, error)
}
