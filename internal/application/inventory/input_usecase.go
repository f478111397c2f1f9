package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// InputUseCase CRUD mínimo de insumos. CurrentStock no se edita aquí: lo
// escribe únicamente el agregador a partir de los lotes activos.
type InputUseCase struct {
	repo repository.InputRepository
}

// NewInputUseCase construye el caso de uso.
func NewInputUseCase(repo repository.InputRepository) *InputUseCase {
	return &InputUseCase{repo: repo}
}

// Create crea un insumo nuevo con stock cero.
func (uc *InputUseCase) Create(in dto.CreateInputRequest) (*entity.Input, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.MinStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "unidades"
	}
	now := time.Now()
	input := &entity.Input{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		UnitMeasure:  in.UnitMeasure,
		UnitCost:     in.UnitCost,
		CurrentStock: decimal.Zero,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(input); err != nil {
		return nil, err
	}
	return input, nil
}

// GetByID obtiene un insumo por ID.
func (uc *InputUseCase) GetByID(id string) (*entity.Input, error) {
	input, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	return input, nil
}

// Update actualiza metadatos del insumo. No toca CurrentStock.
func (uc *InputUseCase) Update(id string, in dto.UpdateInputRequest) (*entity.Input, error) {
	input, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		input.Name = *in.Name
	}
	if in.UnitMeasure != nil {
		input.UnitMeasure = *in.UnitMeasure
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		input.UnitCost = *in.UnitCost
	}
	if in.MinStock != nil {
		input.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		input.MaxStock = *in.MaxStock
	}
	if in.IsActive != nil {
		input.IsActive = *in.IsActive
	}
	input.UpdatedAt = time.Now()
	if err := uc.repo.Update(input); err != nil {
		return nil, err
	}
	return input, nil
}

// List lista insumos con paginación.
func (uc *InputUseCase) List(page dto.PageRequest) ([]*entity.Input, error) {
	page.DefaultPage()
	return uc.repo.List(page.Limit, page.Offset)
}
