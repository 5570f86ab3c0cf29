package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appsales "github.com/jhoicas/Crm-api/internal/application/sales"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TxRunner and appsales.CheckoutTxRunner.
var _ usecase.TxRunner = (*TxRunner)(nil)
var _ appsales.CheckoutTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de etapas atado a la tx
// y hace Commit o Rollback. Se usa para el swap de posiciones del kanban.
func (r *TxRunner) Run(ctx context.Context, fn func(stageRepo repository.StageRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStageRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout inicia una transacción con repos de productos y ventas: el
// checkout descuenta stock e inserta la venta con sus líneas atómicamente.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
