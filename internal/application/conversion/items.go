package conversion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// AddInputItem agrega una línea de consumo a un borrador. Congela identidad y
// costo del insumo al momento de agregar; rechaza variantes duplicadas y
// cantidades por encima del stock actual (chequeo optimista, sin bloqueo: la
// aprobación revalida bajo bloqueo de fila).
func (uc *UseCase) AddInputItem(conversionID string, in dto.AddInputItemRequest) (*entity.ConversionInputItem, error) {
	if in.InputVariantID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return nil, err
	}
	variant, err := uc.inputVariantRepo.GetByID(in.InputVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.convRepo.ListInputItems(conversionID)
	if err != nil {
		return nil, err
	}
	for _, it := range existing {
		if it.InputVariantID == in.InputVariantID {
			return nil, domain.ErrDuplicate
		}
	}
	input, err := uc.inputRepo.GetByID(variant.InputID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity.GreaterThan(variant.CurrentStock) {
		return nil, domain.NewInsufficientStock(input.Code, in.Quantity, variant.CurrentStock)
	}

	item := &entity.ConversionInputItem{
		ID:             uuid.New().String(),
		ConversionID:   conversionID,
		InputVariantID: in.InputVariantID,
		InputCode:      input.Code,
		InputName:      input.Name,
		UnitCost:       variant.UnitCost,
		Quantity:       in.Quantity,
		TotalCost:      in.Quantity.Mul(variant.UnitCost),
		CreatedAt:      time.Now(),
	}
	if err := uc.convRepo.AddInputItem(item); err != nil {
		return nil, err
	}
	if err := uc.recomputeTotals(conv); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateInputItem cambia la cantidad de una línea de consumo de un borrador.
func (uc *UseCase) UpdateInputItem(conversionID, itemID string, in dto.UpdateItemRequest) (*entity.ConversionInputItem, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return nil, err
	}
	item, err := uc.convRepo.GetInputItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ConversionID != conversionID {
		return nil, domain.ErrNotFound
	}
	variant, err := uc.inputVariantRepo.GetByID(item.InputVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity.GreaterThan(variant.CurrentStock) {
		return nil, domain.NewInsufficientStock(item.InputCode, in.Quantity, variant.CurrentStock)
	}
	item.Quantity = in.Quantity
	item.TotalCost = in.Quantity.Mul(item.UnitCost)
	if err := uc.convRepo.UpdateInputItem(item); err != nil {
		return nil, err
	}
	if err := uc.recomputeTotals(conv); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveInputItem quita una línea de consumo de un borrador.
func (uc *UseCase) RemoveInputItem(conversionID, itemID string) error {
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return err
	}
	item, err := uc.convRepo.GetInputItem(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.ConversionID != conversionID {
		return domain.ErrNotFound
	}
	if err := uc.convRepo.RemoveInputItem(itemID); err != nil {
		return err
	}
	return uc.recomputeTotals(conv)
}

// AddOutputItem agrega una línea de producción a un borrador. Congela nombre y
// precio de la variante; precio vacío toma el actual de la variante.
func (uc *UseCase) AddOutputItem(conversionID string, in dto.AddOutputItemRequest) (*entity.ConversionOutputItem, error) {
	if in.VariantID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return nil, err
	}
	variant, err := uc.templateVarRepo.GetByID(in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.convRepo.ListOutputItems(conversionID)
	if err != nil {
		return nil, err
	}
	for _, it := range existing {
		if it.VariantID == in.VariantID {
			return nil, domain.ErrDuplicate
		}
	}
	unitPrice := variant.Price
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *in.UnitPrice
	}

	item := &entity.ConversionOutputItem{
		ID:           uuid.New().String(),
		ConversionID: conversionID,
		VariantID:    in.VariantID,
		VariantName:  variant.Name,
		UnitPrice:    unitPrice,
		Quantity:     in.Quantity,
		TotalValue:   in.Quantity.Mul(unitPrice),
		CreatedAt:    time.Now(),
	}
	if err := uc.convRepo.AddOutputItem(item); err != nil {
		return nil, err
	}
	if err := uc.recomputeTotals(conv); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateOutputItem cambia la cantidad de una línea de producción de un borrador.
func (uc *UseCase) UpdateOutputItem(conversionID, itemID string, in dto.UpdateItemRequest) (*entity.ConversionOutputItem, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return nil, err
	}
	item, err := uc.convRepo.GetOutputItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ConversionID != conversionID {
		return nil, domain.ErrNotFound
	}
	item.Quantity = in.Quantity
	item.TotalValue = in.Quantity.Mul(item.UnitPrice)
	if err := uc.convRepo.UpdateOutputItem(item); err != nil {
		return nil, err
	}
	if err := uc.recomputeTotals(conv); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveOutputItem quita una línea de producción de un borrador.
func (uc *UseCase) RemoveOutputItem(conversionID, itemID string) error {
	conv, err := uc.editableConversion(conversionID)
	if err != nil {
		return err
	}
	item, err := uc.convRepo.GetOutputItem(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.ConversionID != conversionID {
		return domain.ErrNotFound
	}
	if err := uc.convRepo.RemoveOutputItem(itemID); err != nil {
		return err
	}
	return uc.recomputeTotals(conv)
}
