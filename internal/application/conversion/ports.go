package conversion

import (
	"context"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// TxRunner ejecuta la aprobación dentro de una transacción de BD con
// repositorios atados a esa tx. Débitos de insumos, créditos de producto
// terminado, movimientos de ambos lados y la cabecera APPROVED se confirman
// juntos o nada.
type TxRunner interface {
	RunConversion(ctx context.Context, fn func(
		convRepo repository.ConversionRepository,
		inputVariantRepo repository.InputVariantRepository,
		inputMovRepo repository.InputVariantMovementRepository,
		templateVarRepo repository.TemplateVariantRepository,
		templateMovRepo repository.TemplateVariantMovementRepository,
	) error) error
}

// Actor identidad del usuario que ejecuta la operación (para auditoría).
type Actor struct {
	ID   string
	Name string
}

// PDFGenerator renderiza el comprobante de una conversión.
type PDFGenerator interface {
	GenerateConversionPDF(
		ctx context.Context,
		conversion *entity.Conversion,
		inputs []*entity.ConversionInputItem,
		outputs []*entity.ConversionOutputItem,
	) ([]byte, error)
}
