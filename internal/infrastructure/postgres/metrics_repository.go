package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas de solo lectura para los agregados del tablero.
type MetricsRepo struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository construye el adaptador de métricas.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepo {
	return &MetricsRepo{pool: pool}
}

// PipelineMetrics devuelve conteo y valor total de deals por etapa.
// Usa COALESCE para devolver cero en etapas sin deals; las etapas con
// is_revenue suman al total ganado que calcula el caso de uso.
func (r *MetricsRepo) PipelineMetrics(pipelineID string) ([]repository.StageMetrics, error) {
	const query = `
	SELECT
	    s.id                                  AS stage_id,
	    s.name                                AS stage_name,
	    s.is_revenue                          AS is_revenue,
	    COUNT(d.id)                           AS deal_count,
	    COALESCE(SUM(d.value), 0)             AS total_value
	FROM pipeline_stages s
	LEFT JOIN pipeline_stage_deals d
	       ON d.stage_id = s.id AND d.status <> 'archived'
	WHERE s.pipeline_id = $1
	GROUP BY s.id, s.name, s.is_revenue, s.position
	ORDER BY s.position`

	rows, err := r.pool.Query(context.Background(), query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("metrics.PipelineMetrics: %w", err)
	}
	defer rows.Close()

	var results []repository.StageMetrics
	for rows.Next() {
		var row repository.StageMetrics
		if err := rows.Scan(
			&row.StageID,
			&row.StageName,
			&row.IsRevenue,
			&row.DealCount,
			&row.Value,
		); err != nil {
			return nil, fmt.Errorf("metrics.PipelineMetrics scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
