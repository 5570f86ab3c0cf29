package entity

import "time"

// Pipeline representa un proceso de ventas compuesto de etapas ordenadas.
// Nunca se borra físicamente: los flujos observados solo crean y actualizan.
type Pipeline struct {
	ID          string
	BusinessID  string
	Name        string
	Description string

	// Configuración del canal de mensajería (WhatsApp) asociado al pipeline.
	MessagingEnabled bool
	PhoneNumberID    string // identificador del número en el proveedor
	DisplayPhone     string // número visible para el usuario

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stage es una columna del kanban dentro de un pipeline.
// Position determina el orden izquierda→derecha; intercambiar dos Position
// es la única primitiva de reordenamiento.
type Stage struct {
	ID         string
	PipelineID string
	Name       string
	Color      string
	Position   int
	IsInput    bool // las leads nuevas caen aquí
	IsRevenue  bool // cuenta para el total ganado
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
