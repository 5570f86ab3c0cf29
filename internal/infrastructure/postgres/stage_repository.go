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

var _ repository.StageRepository = (*StageRepo)(nil)

// StageRepo implementación del puerto StageRepository sobre PostgreSQL (usable con pool o tx).
type StageRepo struct {
	q Querier
}

// NewStageRepository construye el adaptador de persistencia para etapas. Pasar pool o tx (Querier).
func NewStageRepository(q Querier) *StageRepo {
	return &StageRepo{q: q}
}

const stageColumns = `id, pipeline_id, name, color, position, is_input, is_revenue, created_at, updated_at`

// Create persiste una nueva etapa.
func (r *StageRepo) Create(s *entity.Stage) error {
	query := `
		INSERT INTO pipeline_stages (id, pipeline_id, name, color, position, is_input, is_revenue, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.PipelineID, s.Name, s.Color, s.Position, s.IsInput, s.IsRevenue, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

// GetByID obtiene una etapa por ID.
func (r *StageRepo) GetByID(id string) (*entity.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM pipeline_stages WHERE id = $1`
	var s entity.Stage
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PipelineID, &s.Name, &s.Color, &s.Position, &s.IsInput, &s.IsRevenue, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &s, nil
}

// ListByPipeline lista las etapas de un pipeline ordenadas por posición
// (izquierda → derecha en el tablero).
func (r *StageRepo) ListByPipeline(pipelineID string) ([]*entity.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM pipeline_stages WHERE pipeline_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stage
	for rows.Next() {
		var s entity.Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Color, &s.Position,
			&s.IsInput, &s.IsRevenue, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza nombre, color y flags de la etapa. La posición se cambia
// solo vía UpdatePosition dentro del swap transaccional.
func (r *StageRepo) Update(s *entity.Stage) error {
	query := `
		UPDATE pipeline_stages SET name = $2, color = $3, is_input = $4, is_revenue = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Color, s.IsInput, s.IsRevenue, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	return nil
}

// UpdatePosition fija la posición de una etapa. Se usa en pares dentro de
// una transacción para intercambiar posiciones.
func (r *StageRepo) UpdatePosition(stageID string, position int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pipeline_stages SET position = $2, updated_at = now() WHERE id = $1`,
		stageID, position,
	)
	if err != nil {
		return fmt.Errorf("update stage position: %w", err)
	}
	return nil
}
