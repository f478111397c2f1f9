package inventory

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

// BatchUseCase opera el libro de lotes: cada mutación de cantidades escribe su
// movimiento y recalcula el stock del insumo padre dentro de una transacción
// (bloqueo de fila con SELECT FOR UPDATE y Commit/Rollback).
type BatchUseCase struct {
	txRunner  TxRunner
	inputRepo repository.InputRepository
	batchRepo repository.InputBatchRepository
	movRepo   repository.InputBatchMovementRepository
}

// NewBatchUseCase construye el caso de uso. Los repos directos (sin tx) se
// usan solo para lecturas.
func NewBatchUseCase(
	txRunner TxRunner,
	inputRepo repository.InputRepository,
	batchRepo repository.InputBatchRepository,
	movRepo repository.InputBatchMovementRepository,
) *BatchUseCase {
	return &BatchUseCase{
		txRunner:  txRunner,
		inputRepo: inputRepo,
		batchRepo: batchRepo,
		movRepo:   movRepo,
	}
}

// CreateBatch registra una entrada de mercancía: crea el lote con
// CurrentQuantity = InitialQuantity, escribe el movimiento ENTRADA y recalcula
// el stock del insumo, todo en una transacción.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, actor Actor, inputID string, in dto.CreateBatchRequest) (*entity.InputBatch, error) {
	if in.BatchNumber == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	input, err := uc.inputRepo.GetByID(inputID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.batchRepo.GetByInputAndNumber(inputID, in.BatchNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	batch := &entity.InputBatch{
		ID:               uuid.New().String(),
		InputID:          inputID,
		BatchNumber:      in.BatchNumber,
		InitialQuantity:  in.Quantity,
		CurrentQuantity:  in.Quantity,
		ReservedQuantity: decimal.Zero,
		UnitCost:         in.UnitCost,
		PurchaseDate:     in.PurchaseDate,
		ExpiryDate:       in.ExpiryDate,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		if err := movRepo.Create(uc.movement(batch, entity.MovementTypeENTRADA, in.Quantity, "entrada de mercancía", "", actor, now)); err != nil {
			return err
		}
		_, err := recalculateInputStock(batchRepo, inputRepo, inputID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// UpdateBatch actualiza metadatos del lote (número, costo, fechas, activo).
// Las cantidades solo se mueven vía ajuste/reserva/liberación/salida; cambiar
// IsActive altera la suma de lotes activos, así que también recalcula.
func (uc *BatchUseCase) UpdateBatch(ctx context.Context, batchID string, in dto.UpdateBatchRequest) (*entity.InputBatch, error) {
	var updated *entity.InputBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		_ repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if in.BatchNumber != nil && *in.BatchNumber != batch.BatchNumber {
			dup, err := batchRepo.GetByInputAndNumber(batch.InputID, *in.BatchNumber)
			if err != nil {
				return err
			}
			if dup != nil {
				return domain.ErrDuplicate
			}
			batch.BatchNumber = *in.BatchNumber
		}
		if in.UnitCost != nil {
			if in.UnitCost.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			batch.UnitCost = *in.UnitCost
		}
		if in.PurchaseDate != nil {
			batch.PurchaseDate = in.PurchaseDate
		}
		if in.ExpiryDate != nil {
			batch.ExpiryDate = in.ExpiryDate
		}
		if in.IsActive != nil {
			batch.IsActive = *in.IsActive
		}
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if _, err := recalculateInputStock(batchRepo, inputRepo, batch.InputID); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustQuantity fija CurrentQuantity en el valor indicado (corrección por
// daño o reconteo) y registra un AJUSTE por |nueva - anterior|.
func (uc *BatchUseCase) AdjustQuantity(ctx context.Context, actor Actor, batchID string, in dto.AdjustQuantityRequest) (*entity.InputBatch, error) {
	if in.NewQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InputBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		delta := in.NewQuantity.Sub(batch.CurrentQuantity).Abs()
		batch.CurrentQuantity = in.NewQuantity
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if err := movRepo.Create(uc.movement(batch, entity.MovementTypeAJUSTE, delta, in.Reason, "", actor, batch.UpdatedAt)); err != nil {
			return err
		}
		if _, err := recalculateInputStock(batchRepo, inputRepo, batch.InputID); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reserve aparta stock del lote para una orden: descuenta CurrentQuantity y
// suma ReservedQuantity a la vez (la reserva saca las unidades del pool
// gastable) y registra una RESERVA. Falla con stock insuficiente si se pide
// más que CurrentQuantity - ReservedQuantity.
func (uc *BatchUseCase) Reserve(ctx context.Context, actor Actor, batchID string, in dto.ReserveRequest) (*entity.InputBatch, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InputBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		available := batch.AvailableQuantity()
		if in.Quantity.GreaterThan(available) {
			return domain.NewInsufficientStock(batch.BatchNumber, in.Quantity, available)
		}
		batch.CurrentQuantity = batch.CurrentQuantity.Sub(in.Quantity)
		batch.ReservedQuantity = batch.ReservedQuantity.Add(in.Quantity)
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if err := movRepo.Create(uc.movement(batch, entity.MovementTypeRESERVA, in.Quantity, "", in.OrderRef, actor, batch.UpdatedAt)); err != nil {
			return err
		}
		if _, err := recalculateInputStock(batchRepo, inputRepo, batch.InputID); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Release revierte una reserva: devuelve la cantidad al pool gastable y
// registra una LIBERACION.
func (uc *BatchUseCase) Release(ctx context.Context, actor Actor, batchID string, in dto.ReserveRequest) (*entity.InputBatch, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InputBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if in.Quantity.GreaterThan(batch.ReservedQuantity) {
			return domain.ErrInvalidInput
		}
		batch.ReservedQuantity = batch.ReservedQuantity.Sub(in.Quantity)
		batch.CurrentQuantity = batch.CurrentQuantity.Add(in.Quantity)
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if err := movRepo.Create(uc.movement(batch, entity.MovementTypeLIBERACION, in.Quantity, "", in.OrderRef, actor, batch.UpdatedAt)); err != nil {
			return err
		}
		if _, err := recalculateInputStock(batchRepo, inputRepo, batch.InputID); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordOutput consume definitivamente stock previamente reservado: solo
// descuenta ReservedQuantity (las unidades salieron del pool gastable al
// reservarse) y registra una SALIDA con referencia a la producción.
func (uc *BatchUseCase) RecordOutput(ctx context.Context, actor Actor, batchID string, in dto.OutputRequest) (*entity.InputBatch, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.InputBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InputBatchRepository,
		movRepo repository.InputBatchMovementRepository,
		inputRepo repository.InputRepository,
	) error {
		batch, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if in.Quantity.GreaterThan(batch.ReservedQuantity) {
			return domain.NewInsufficientStock(batch.BatchNumber, in.Quantity, batch.ReservedQuantity)
		}
		batch.ReservedQuantity = batch.ReservedQuantity.Sub(in.Quantity)
		batch.UpdatedAt = time.Now()
		if err := batchRepo.Update(batch); err != nil {
			return err
		}
		if err := movRepo.Create(uc.movement(batch, entity.MovementTypeSALIDA, in.Quantity, "", in.ProductionRef, actor, batch.UpdatedAt)); err != nil {
			return err
		}
		if _, err := recalculateInputStock(batchRepo, inputRepo, batch.InputID); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetBatch obtiene un lote por ID.
func (uc *BatchUseCase) GetBatch(batchID string) (*entity.InputBatch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// ListBatchesByInput lista los lotes de un insumo.
func (uc *BatchUseCase) ListBatchesByInput(inputID string, activeOnly bool) ([]*entity.InputBatch, error) {
	input, err := uc.inputRepo.GetByID(inputID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	return uc.batchRepo.ListByInput(inputID, activeOnly)
}

// ListMovementsByInput lista el libro de movimientos de un insumo.
func (uc *BatchUseCase) ListMovementsByInput(inputID string, q dto.ListMovementsQuery) ([]*entity.InputBatchMovement, error) {
	q.DefaultPage()
	return uc.movRepo.ListByInput(inputID, q.From, q.To, q.Limit, q.Offset)
}

// ListMovementsByBatch lista los últimos movimientos de un lote.
func (uc *BatchUseCase) ListMovementsByBatch(batchID string, limit int) ([]*entity.InputBatchMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.movRepo.ListByBatch(batchID, limit)
}

func (uc *BatchUseCase) movement(batch *entity.InputBatch, movType string, qty decimal.Decimal, reason, reference string, actor Actor, at time.Time) *entity.InputBatchMovement {
	return &entity.InputBatchMovement{
		ID:            uuid.New().String(),
		InputID:       batch.InputID,
		BatchID:       batch.ID,
		Type:          movType,
		Quantity:      qty,
		Reason:        reason,
		Reference:     reference,
		CreatedAt:     at,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
}
