package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

var _ repository.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo implementación del puerto PipelineRepository sobre PostgreSQL (usable con pool o tx).
type PipelineRepo struct {
	q Querier
}

// NewPipelineRepository construye el adaptador de persistencia para pipelines. Pasar pool o tx (Querier).
func NewPipelineRepository(q Querier) *PipelineRepo {
	return &PipelineRepo{q: q}
}

const pipelineColumns = `id, business_id, name, description, messaging_enabled, phone_number_id, display_phone, created_at, updated_at`

// Create persiste un nuevo pipeline.
func (r *PipelineRepo) Create(p *entity.Pipeline) error {
	query := `
		INSERT INTO pipelines (id, business_id, name, description, messaging_enabled, phone_number_id, display_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BusinessID, p.Name, p.Description,
		p.MessagingEnabled, p.PhoneNumberID, p.DisplayPhone,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pipeline: %w", err)
	}
	return nil
}

// GetByID obtiene un pipeline por ID.
func (r *PipelineRepo) GetByID(id string) (*entity.Pipeline, error) {
	query := `SELECT ` + pipelineColumns + ` FROM pipelines WHERE id = $1`
	var p entity.Pipeline
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BusinessID, &p.Name, &p.Description,
		&p.MessagingEnabled, &p.PhoneNumberID, &p.DisplayPhone,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pipeline: %w", err)
	}
	return &p, nil
}

// ListByBusiness lista los pipelines de un negocio.
func (r *PipelineRepo) ListByBusiness(businessID string) ([]*entity.Pipeline, error) {
	query := `SELECT ` + pipelineColumns + ` FROM pipelines WHERE business_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pipeline
	for rows.Next() {
		var p entity.Pipeline
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description,
			&p.MessagingEnabled, &p.PhoneNumberID, &p.DisplayPhone,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, descripción y configuración de mensajería.
func (r *PipelineRepo) Update(p *entity.Pipeline) error {
	query := `
		UPDATE pipelines SET name = $2, description = $3, messaging_enabled = $4, phone_number_id = $5, display_phone = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.MessagingEnabled, p.PhoneNumberID, p.DisplayPhone, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pipeline: %w", err)
	}
	return nil
}
