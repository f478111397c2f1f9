package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/insumos-api/internal/application/conversion"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ conversion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para el libro de lotes: lote + movimiento +
// recálculo de stock del insumo con Commit o Rollback conjuntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.InputBatchRepository,
	movRepo repository.InputBatchMovementRepository,
	inputRepo repository.InputRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInputBatchRepository(tx), NewInputBatchMovementRepository(tx), NewInputRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConversion inicia una transacción para la aprobación de conversiones:
// débitos, créditos, movimientos de ambos lados y cabecera en una unidad.
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	convRepo repository.ConversionRepository,
	inputVariantRepo repository.InputVariantRepository,
	inputMovRepo repository.InputVariantMovementRepository,
	templateVarRepo repository.TemplateVariantRepository,
	templateMovRepo repository.TemplateVariantMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewConversionRepository(tx),
		NewInputVariantRepository(tx),
		NewInputVariantMovementRepository(tx),
		NewTemplateVariantRepository(tx),
		NewTemplateVariantMovementRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
