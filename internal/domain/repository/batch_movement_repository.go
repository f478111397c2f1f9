package repository

import (
	"time"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// InputBatchMovementRepository puerto de persistencia del libro de
// movimientos de lotes. Solo inserta y lista: los movimientos son inmutables.
type InputBatchMovementRepository interface {
	Create(movement *entity.InputBatchMovement) error
	ListByInput(inputID string, from, to *time.Time, limit, offset int) ([]*entity.InputBatchMovement, error)
	ListByBatch(batchID string, limit int) ([]*entity.InputBatchMovement, error)
}
