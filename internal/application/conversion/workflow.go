package conversion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// SubmitForApproval pasa DRAFT -> PENDING. Exige al menos una línea por lado y
// revalida que cada ingrediente siga teniendo stock suficiente, reportando el
// faltante específico.
func (uc *UseCase) SubmitForApproval(id string) (*entity.Conversion, error) {
	conv, err := uc.convRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if conv.Status != entity.ConversionStatusDraft {
		return nil, domain.ErrInvalidState
	}
	inputs, err := uc.convRepo.ListInputItems(id)
	if err != nil {
		return nil, err
	}
	outputs, err := uc.convRepo.ListOutputItems(id)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range inputs {
		variant, err := uc.inputVariantRepo.GetByID(item.InputVariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
		if item.Quantity.GreaterThan(variant.CurrentStock) {
			return nil, domain.NewInsufficientStock(item.InputCode, item.Quantity, variant.CurrentStock)
		}
	}
	conv.Status = entity.ConversionStatusPending
	conv.UpdatedAt = time.Now()
	if err := uc.convRepo.Update(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Approve ejecuta PENDING -> APPROVED en una sola transacción: por cada línea
// de entrada bloquea la variante de insumo, revalida stock, lo descuenta y
// escribe una SALIDA; por cada línea de salida bloquea la variante producible,
// acredita stock y escribe una ENTRADA; al final marca la cabecera APPROVED
// con el aprobador. Cualquier falla revierte todo: nunca hay aplicación parcial.
func (uc *UseCase) Approve(ctx context.Context, actor Actor, id string) (*entity.Conversion, error) {
	var approved *entity.Conversion
	err := uc.txRunner.RunConversion(ctx, func(
		convRepo repository.ConversionRepository,
		inputVariantRepo repository.InputVariantRepository,
		inputMovRepo repository.InputVariantMovementRepository,
		templateVarRepo repository.TemplateVariantRepository,
		templateMovRepo repository.TemplateVariantMovementRepository,
	) error {
		conv, err := convRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if conv == nil {
			return domain.ErrNotFound
		}
		if conv.Status != entity.ConversionStatusPending {
			return domain.ErrInvalidState
		}
		inputs, err := convRepo.ListInputItems(id)
		if err != nil {
			return err
		}
		outputs, err := convRepo.ListOutputItems(id)
		if err != nil {
			return err
		}
		if len(inputs) == 0 || len(outputs) == 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()

		// Débito de insumos bajo bloqueo de fila
		for _, item := range inputs {
			variant, err := inputVariantRepo.GetByIDForUpdate(item.InputVariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return domain.ErrNotFound
			}
			if item.Quantity.GreaterThan(variant.CurrentStock) {
				return domain.NewInsufficientStock(item.InputCode, item.Quantity, variant.CurrentStock)
			}
			if err := inputVariantRepo.UpdateStock(variant.ID, variant.CurrentStock.Sub(item.Quantity)); err != nil {
				return err
			}
			if err := inputMovRepo.Create(&entity.InputVariantMovement{
				ID:            uuid.New().String(),
				VariantID:     variant.ID,
				Type:          entity.MovementTypeSALIDA,
				Quantity:      item.Quantity,
				Reason:        "conversión " + conv.ConversionNumber,
				Reference:     conv.ID,
				CreatedAt:     now,
				CreatedBy:     actor.ID,
				CreatedByName: actor.Name,
			}); err != nil {
				return err
			}
		}

		// Crédito de producto terminado
		for _, item := range outputs {
			variant, err := templateVarRepo.GetByIDForUpdate(item.VariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return domain.ErrNotFound
			}
			if err := templateVarRepo.UpdateStock(variant.ID, variant.CurrentStock.Add(item.Quantity)); err != nil {
				return err
			}
			if err := templateMovRepo.Create(&entity.TemplateVariantMovement{
				ID:            uuid.New().String(),
				VariantID:     variant.ID,
				Type:          entity.MovementTypeENTRADA,
				Quantity:      item.Quantity,
				Reason:        "conversión " + conv.ConversionNumber,
				Reference:     conv.ID,
				CreatedAt:     now,
				CreatedBy:     actor.ID,
				CreatedByName: actor.Name,
			}); err != nil {
				return err
			}
		}

		conv.Status = entity.ConversionStatusApproved
		conv.ApprovedBy = actor.ID
		conv.ApprovedByName = actor.Name
		conv.ApprovedAt = &now
		conv.UpdatedAt = now
		if err := convRepo.Update(conv); err != nil {
			return err
		}
		approved = conv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}
