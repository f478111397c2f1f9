package inventory

import (
	"context"

	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación del lote, su
// movimiento y el recálculo del stock del insumo se confirmen juntos o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error) error
}

// Actor identidad del usuario que ejecuta la operación (para auditoría).
type Actor struct {
	ID   string
	Name string
}
