package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// recalculateInputStock suma CurrentQuantity de los lotes activos del insumo y
// escribe el resultado en Input.CurrentStock. Es el único camino que escribe
// esa columna; idempotente y seguro de invocar de más. Se llama con los repos
// de la transacción en curso para que el recálculo quede en la misma unidad
// que la mutación del lote.
func recalculateInputStock(
	batchRepo repository.InputBatchRepository,
	inputRepo repository.InputRepository,
	inputID string,
) (decimal.Decimal, error) {
	total, err := batchRepo.SumActiveQuantity(inputID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := inputRepo.UpdateCurrentStock(inputID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// StockAggregator mantiene el invariante Input.CurrentStock == Σ lotes activos
// y expone las consultas agregadas del insumo.
type StockAggregator struct {
	txRunner  TxRunner
	inputRepo repository.InputRepository
}

// NewStockAggregator construye el agregador.
func NewStockAggregator(txRunner TxRunner, inputRepo repository.InputRepository) *StockAggregator {
	return &StockAggregator{txRunner: txRunner, inputRepo: inputRepo}
}

// Recalculate reconcilia el stock del insumo contra sus lotes activos y
// devuelve el total resultante.
func (a *StockAggregator) Recalculate(ctx context.Context, inputID string) (decimal.Decimal, error) {
	input, err := a.inputRepo.GetByID(inputID)
	if err != nil {
		return decimal.Zero, err
	}
	if input == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	var total decimal.Decimal
	err = a.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		_ repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		total, err = recalculateInputStock(batchRepo, inputRepo, inputID)
		return err
	})
	return total, err
}

// ListLowStock insumos con CurrentStock <= MinStock.
func (a *StockAggregator) ListLowStock() ([]*entity.Input, error) {
	return a.inputRepo.ListLowStock()
}
