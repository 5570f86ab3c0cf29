package dto

import "time"

// CalendarConnectResponse URL de autorización del proveedor para redirigir
// al usuario. El state asociado queda registrado en el servidor.
type CalendarConnectResponse struct {
	AuthURL string `json:"auth_url"`
}

// CalendarCallbackRequest parámetros que devuelve el proveedor.
type CalendarCallbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
}

// CalendarStatusResponse estado de la integración del usuario.
type CalendarStatusResponse struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
