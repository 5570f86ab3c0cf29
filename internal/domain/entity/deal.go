package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un deal. Archivar es distinto de borrar: el registro persiste
// fuera del tablero.
const (
	DealStatusOpen     = "open"
	DealStatusArchived = "archived"
)

// Deal representa una oportunidad de venta (lead) anclada a una etapa.
// StageID es nullable: un deal archivado o recién importado puede no tener columna.
type Deal struct {
	ID           string
	BusinessID   string
	PipelineID   string
	StageID      *string
	CustomerName string
	ContactEmail string
	ContactPhone string
	Value        decimal.Decimal
	Status       string
	IsRevenue    bool
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
