package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// TemplateVariantRepository puerto de lectura/stock para variantes producibles.
type TemplateVariantRepository interface {
	GetByID(id string) (*entity.TemplateVariant, error)
	// GetByIDForUpdate bloquea la fila de la variante (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.TemplateVariant, error)
	UpdateStock(variantID string, stock decimal.Decimal) error
	ListByProduct(productID string) ([]*entity.TemplateVariant, error)
}

// TemplateVariantMovementRepository libro de movimientos de variantes producibles.
type TemplateVariantMovementRepository interface {
	Create(movement *entity.TemplateVariantMovement) error
	ListByVariant(variantID string, limit int) ([]*entity.TemplateVariantMovement, error)
}
