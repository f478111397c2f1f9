package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// InputVariantRepository puerto de lectura/stock para variantes de insumo.
// El CRUD de variantes pertenece al catálogo; aquí solo se consulta y se
// actualiza stock dentro de transacciones.
type InputVariantRepository interface {
	GetByID(id string) (*entity.InputVariant, error)
	// GetByIDForUpdate bloquea la fila de la variante (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.InputVariant, error)
	UpdateStock(variantID string, stock decimal.Decimal) error
	ListByInput(inputID string) ([]*entity.InputVariant, error)
}

// InputVariantMovementRepository libro de movimientos de variantes de insumo.
type InputVariantMovementRepository interface {
	Create(movement *entity.InputVariantMovement) error
	ListByVariant(variantID string, limit int) ([]*entity.InputVariantMovement, error)
}
