package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePipelineRequest alta de pipeline (name requerido).
type CreatePipelineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePipelineRequest edición parcial del pipeline, incluida la
// configuración del canal de mensajería.
type UpdatePipelineRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	MessagingEnabled *bool   `json:"messaging_enabled"`
	PhoneNumberID    *string `json:"phone_number_id"`
	DisplayPhone     *string `json:"display_phone"`
}

// PipelineResponse pipeline expuesto por la API.
type PipelineResponse struct {
	ID               string    `json:"id"`
	BusinessID       string    `json:"business_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	MessagingEnabled bool      `json:"messaging_enabled"`
	PhoneNumberID    string    `json:"phone_number_id"`
	DisplayPhone     string    `json:"display_phone"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateStageRequest alta de etapa (name requerido). La posición la asigna
// el caso de uso: siempre al final del tablero.
type CreateStageRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsInput   bool   `json:"is_input"`
	IsRevenue bool   `json:"is_revenue"`
}

// UpdateStageRequest edición parcial de etapa (la posición va por /move).
type UpdateStageRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	IsInput   *bool   `json:"is_input"`
	IsRevenue *bool   `json:"is_revenue"`
}

// StageResponse etapa expuesta por la API.
type StageResponse struct {
	ID         string    `json:"id"`
	PipelineID string    `json:"pipeline_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Position   int       `json:"position"`
	IsInput    bool      `json:"is_input"`
	IsRevenue  bool      `json:"is_revenue"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MoveStageRequest dirección del movimiento de columna: "left" o "right".
type MoveStageRequest struct {
	Direction string `json:"direction"`
}

// CreateDealRequest alta de deal (customer_name y value requeridos).
// StageID opcional: si falta, cae en la etapa de entrada del pipeline.
type CreateDealRequest struct {
	StageID      *string         `json:"stage_id"`
	CustomerName string          `json:"customer_name"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone"`
	Value        decimal.Decimal `json:"value"`
}

// UpdateDealRequest edición parcial de deal.
type UpdateDealRequest struct {
	CustomerName *string          `json:"customer_name"`
	ContactEmail *string          `json:"contact_email"`
	ContactPhone *string          `json:"contact_phone"`
	Value        *decimal.Decimal `json:"value"`
	IsRevenue    *bool            `json:"is_revenue"`
}

// MoveDealRequest cambio de columna de un deal (drop del drag-and-drop).
type MoveDealRequest struct {
	StageID string `json:"stage_id"`
}

// DealResponse deal expuesto por la API.
type DealResponse struct {
	ID           string          `json:"id"`
	BusinessID   string          `json:"business_id"`
	PipelineID   string          `json:"pipeline_id"`
	StageID      *string         `json:"stage_id"`
	CustomerName string          `json:"customer_name"`
	ContactEmail string          `json:"contact_email"`
	ContactPhone string          `json:"contact_phone"`
	Value        decimal.Decimal `json:"value"`
	Status       string          `json:"status"`
	IsRevenue    bool            `json:"is_revenue"`
	ClosedAt     *time.Time      `json:"closed_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BoardResponse el tablero completo: etapas ordenadas con sus deals por
// orden de llegada. Es lo que la página consulta al montar y tras cada acción.
type BoardResponse struct {
	Pipeline PipelineResponse `json:"pipeline"`
	Columns  []BoardColumn    `json:"columns"`
}

// BoardColumn una columna del tablero.
type BoardColumn struct {
	Stage StageResponse  `json:"stage"`
	Deals []DealResponse `json:"deals"`
}

// StageMetricsResponse métricas de una etapa.
type StageMetricsResponse struct {
	StageID   string          `json:"stage_id"`
	StageName string          `json:"stage_name"`
	IsRevenue bool            `json:"is_revenue"`
	DealCount int             `json:"deal_count"`
	Value     decimal.Decimal `json:"value"`
}

// PipelineMetricsResponse métricas del pipeline: por etapa y total ganado
// (suma de las etapas con is_revenue).
type PipelineMetricsResponse struct {
	Stages   []StageMetricsResponse `json:"stages"`
	WonTotal decimal.Decimal        `json:"won_total"`
}
