package conversion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// CreateFromTemplate crea un borrador TEMPLATE a partir de la receta de una
// variante producible: valida stock de cada ingrediente a
// cantidad deseada × cantidad de receta, agrega una línea de consumo por
// ingrediente y una línea de salida por la variante objetivo. Composición
// sobre receta + disponibilidad + borrador, no una primitiva nueva.
func (uc *UseCase) CreateFromTemplate(ctx context.Context, actor Actor, in dto.CreateFromTemplateRequest) (*entity.Conversion, error) {
	if in.TemplateVariantID == "" || in.OutputVariantID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.Equal(in.Quantity.Floor()) {
		return nil, domain.ErrInvalidInput // unidades terminadas enteras
	}
	templateVariant, err := uc.templateVarRepo.GetByID(in.TemplateVariantID)
	if err != nil {
		return nil, err
	}
	if templateVariant == nil {
		return nil, domain.ErrNotFound
	}
	outputVariant, err := uc.templateVarRepo.GetByID(in.OutputVariantID)
	if err != nil {
		return nil, err
	}
	if outputVariant == nil {
		return nil, domain.ErrNotFound
	}
	recipes, err := uc.recipeRepo.ListByVariant(in.TemplateVariantID)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, domain.ErrInvalidInput // sin receta no hay qué convertir
	}

	// Validar stock de todos los ingredientes antes de crear nada
	type line struct {
		variantID string
		code      string
		name      string
		unitCost  decimal.Decimal
		quantity  decimal.Decimal
	}
	lines := make([]line, 0, len(recipes))
	for _, r := range recipes {
		if !r.Quantity.GreaterThan(decimal.Zero) {
			continue // fila inválida heredada, se ignora igual que en disponibilidad
		}
		variant, err := uc.inputVariantRepo.GetByID(r.InputVariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
		input, err := uc.inputRepo.GetByID(variant.InputID)
		if err != nil {
			return nil, err
		}
		if input == nil {
			return nil, domain.ErrNotFound
		}
		required := in.Quantity.Mul(r.Quantity)
		if required.GreaterThan(variant.CurrentStock) {
			return nil, domain.NewInsufficientStock(input.Code, required, variant.CurrentStock)
		}
		lines = append(lines, line{
			variantID: variant.ID,
			code:      input.Code,
			name:      input.Name,
			unitCost:  variant.UnitCost,
			quantity:  required,
		})
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Consecutivo, cabecera y líneas en una sola transacción: sin número
	// repetido bajo concurrencia y sin borradores a medias.
	now := time.Now()
	totalInput := decimal.Zero
	for _, l := range lines {
		totalInput = totalInput.Add(l.quantity.Mul(l.unitCost))
	}
	conv := &entity.Conversion{
		ID:              uuid.New().String(),
		ConversionType:  entity.ConversionTypeTemplate,
		TemplateID:      templateVariant.ProductID,
		Status:          entity.ConversionStatusDraft,
		ConversionDate:  now,
		Notes:           in.Notes,
		TotalInputCost:  totalInput,
		TotalOutputCost: in.Quantity.Mul(outputVariant.Price),
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.RunConversion(ctx, func(
		convRepo repository.ConversionRepository,
		_ repository.InputVariantRepository,
		_ repository.InputVariantMovementRepository,
		_ repository.TemplateVariantRepository,
		_ repository.TemplateVariantMovementRepository,
	) error {
		number, err := convRepo.NextNumber(now.Year())
		if err != nil {
			return err
		}
		conv.ConversionNumber = number
		if err := convRepo.Create(conv); err != nil {
			return err
		}
		for _, l := range lines {
			item := &entity.ConversionInputItem{
				ID:             uuid.New().String(),
				ConversionID:   conv.ID,
				InputVariantID: l.variantID,
				InputCode:      l.code,
				InputName:      l.name,
				UnitCost:       l.unitCost,
				Quantity:       l.quantity,
				TotalCost:      l.quantity.Mul(l.unitCost),
				CreatedAt:      now,
			}
			if err := convRepo.AddInputItem(item); err != nil {
				return err
			}
		}
		return convRepo.AddOutputItem(&entity.ConversionOutputItem{
			ID:           uuid.New().String(),
			ConversionID: conv.ID,
			VariantID:    outputVariant.ID,
			VariantName:  outputVariant.Name,
			UnitPrice:    outputVariant.Price,
			Quantity:     in.Quantity,
			TotalValue:   in.Quantity.Mul(outputVariant.Price),
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}
