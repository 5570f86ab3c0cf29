package entity

import "time"

// Business representa un negocio del usuario: dueño de pipelines, productos y ventas.
// Corresponde al segmento /user/businesses/:id de la API.
type Business struct {
	ID        string
	OwnerID   string
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
