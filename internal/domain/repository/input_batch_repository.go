package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// InputBatchRepository define el puerto de persistencia para lotes de insumo.
// Usado dentro de transacciones para garantizar consistencia.
type InputBatchRepository interface {
	Create(batch *entity.InputBatch) error
	GetByID(id string) (*entity.InputBatch, error)
	// GetByIDForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.InputBatch, error)
	GetByInputAndNumber(inputID, batchNumber string) (*entity.InputBatch, error)
	Update(batch *entity.InputBatch) error
	ListByInput(inputID string, activeOnly bool) ([]*entity.InputBatch, error)
	// SumActiveQuantity suma CurrentQuantity de los lotes activos del insumo.
	SumActiveQuantity(inputID string) (decimal.Decimal, error)
}
