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

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación del puerto DealRepository sobre PostgreSQL (usable con pool o tx).
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador de persistencia para deals. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, business_id, pipeline_id, stage_id, customer_name, contact_email, contact_phone, value, status, is_revenue, closed_at, created_at, updated_at`

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	err := row.Scan(
		&d.ID, &d.BusinessID, &d.PipelineID, &d.StageID,
		&d.CustomerName, &d.ContactEmail, &d.ContactPhone,
		&d.Value, &d.Status, &d.IsRevenue, &d.ClosedAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste un nuevo deal.
func (r *DealRepo) Create(d *entity.Deal) error {
	query := `
		INSERT INTO pipeline_stage_deals (id, business_id, pipeline_id, stage_id, customer_name, contact_email, contact_phone, value, status, is_revenue, closed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.BusinessID, d.PipelineID, d.StageID,
		d.CustomerName, d.ContactEmail, d.ContactPhone,
		d.Value, d.Status, d.IsRevenue, d.ClosedAt,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID obtiene un deal por ID.
func (r *DealRepo) GetByID(id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM pipeline_stage_deals WHERE id = $1`
	d, err := scanDeal(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

// ListByPipeline lista los deals abiertos de un pipeline por orden de llegada.
func (r *DealRepo) ListByPipeline(pipelineID string) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM pipeline_stage_deals
		WHERE pipeline_id = $1 AND status <> 'archived' ORDER BY created_at`
	return r.list(query, pipelineID)
}

// ListByStage lista los deals de una etapa por orden de llegada.
func (r *DealRepo) ListByStage(stageID string) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM pipeline_stage_deals
		WHERE stage_id = $1 AND status <> 'archived' ORDER BY created_at`
	return r.list(query, stageID)
}

func (r *DealRepo) list(query string, arg any) ([]*entity.Deal, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del deal.
func (r *DealRepo) Update(d *entity.Deal) error {
	query := `
		UPDATE pipeline_stage_deals SET customer_name = $2, contact_email = $3, contact_phone = $4, value = $5, status = $6, is_revenue = $7, closed_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.CustomerName, d.ContactEmail, d.ContactPhone,
		d.Value, d.Status, d.IsRevenue, d.ClosedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// UpdateStage mueve el deal de columna: un único UPDATE de la llave foránea.
// Una etapa que ya no existe (borrada entre la lectura y el UPDATE) viola el
// FK y se reporta como entrada inválida.
func (r *DealRepo) UpdateStage(dealID string, stageID *string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pipeline_stage_deals SET stage_id = $2, updated_at = now() WHERE id = $1`,
		dealID, stageID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update deal stage: %w", err)
	}
	return nil
}
