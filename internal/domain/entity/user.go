package entity

import "time"

// Roles de usuario dentro de un negocio.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario de la aplicación, siempre asociado a un negocio.
type User struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// APIKey guarda credenciales de integraciones externas por usuario
// (tabla user_api_keys). Para la integración de calendario almacena los
// tokens OAuth obtenidos en el intercambio del lado del servidor.
type APIKey struct {
	ID           string
	UserID       string
	Provider     string // "calendar"
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
