package conversion

import (
	"context"

	"github.com/tu-usuario/insumos-api/internal/domain"
)

// PDFUseCase genera el comprobante PDF de una conversión (representación
// imprimible de la transferencia aprobada).
type PDFUseCase struct {
	uc        *UseCase
	generator PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(uc *UseCase, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{uc: uc, generator: generator}
}

// GeneratePDF devuelve los bytes del comprobante. Cualquier estado es válido:
// un borrador imprime como propuesta, una aprobada como comprobante definitivo.
func (p *PDFUseCase) GeneratePDF(ctx context.Context, conversionID string) ([]byte, error) {
	conv, inputs, outputs, err := p.uc.GetByID(conversionID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	return p.generator.GenerateConversionPDF(ctx, conv, inputs, outputs)
}
