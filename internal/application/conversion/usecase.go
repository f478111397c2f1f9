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

// UseCase gobierna el flujo de conversión de insumos a producto terminado:
// DRAFT -> PENDING -> APPROVED, con DRAFT|PENDING -> CANCELLED. Las líneas
// solo mutan en borrador y la aprobación transfiere stock de forma atómica.
type UseCase struct {
	txRunner         TxRunner
	convRepo         repository.ConversionRepository
	inputVariantRepo repository.InputVariantRepository
	templateVarRepo  repository.TemplateVariantRepository
	recipeRepo       repository.TemplateRecipeRepository
	inputRepo        repository.InputRepository
}

// NewUseCase construye el caso de uso. Los repos directos (sin tx) se usan
// para lecturas y para las mutaciones de borrador; la aprobación pasa por el
// TxRunner.
func NewUseCase(
	txRunner TxRunner,
	convRepo repository.ConversionRepository,
	inputVariantRepo repository.InputVariantRepository,
	templateVarRepo repository.TemplateVariantRepository,
	recipeRepo repository.TemplateRecipeRepository,
	inputRepo repository.InputRepository,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		convRepo:         convRepo,
		inputVariantRepo: inputVariantRepo,
		templateVarRepo:  templateVarRepo,
		recipeRepo:       recipeRepo,
		inputRepo:        inputRepo,
	}
}

// Create crea una conversión MANUAL en borrador. El consecutivo del año se
// asigna y la cabecera se inserta en la misma transacción: dos creaciones
// concurrentes no pueden leer el mismo máximo.
func (uc *UseCase) Create(ctx context.Context, actor Actor, in dto.CreateConversionRequest) (*entity.Conversion, error) {
	now := time.Now()
	date := now
	if in.ConversionDate != nil {
		date = *in.ConversionDate
	}
	conv := &entity.Conversion{
		ID:              uuid.New().String(),
		ConversionType:  entity.ConversionTypeManual,
		Status:          entity.ConversionStatusDraft,
		ConversionDate:  date,
		Notes:           in.Notes,
		TotalInputCost:  decimal.Zero,
		TotalOutputCost: decimal.Zero,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.RunConversion(ctx, func(
		convRepo repository.ConversionRepository,
		_ repository.InputVariantRepository,
		_ repository.InputVariantMovementRepository,
		_ repository.TemplateVariantRepository,
		_ repository.TemplateVariantMovementRepository,
	) error {
		number, err := convRepo.NextNumber(date.Year())
		if err != nil {
			return err
		}
		conv.ConversionNumber = number
		return convRepo.Create(conv)
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// GetByID obtiene la cabecera con sus líneas.
func (uc *UseCase) GetByID(id string) (*entity.Conversion, []*entity.ConversionInputItem, []*entity.ConversionOutputItem, error) {
	conv, err := uc.convRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if conv == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	inputs, err := uc.convRepo.ListInputItems(id)
	if err != nil {
		return nil, nil, nil, err
	}
	outputs, err := uc.convRepo.ListOutputItems(id)
	if err != nil {
		return nil, nil, nil, err
	}
	return conv, inputs, outputs, nil
}

// List lista conversiones con filtros de estado y rango de fechas.
func (uc *UseCase) List(q dto.ConversionListQuery) ([]*entity.Conversion, error) {
	q.DefaultPage()
	if q.Status != "" {
		switch q.Status {
		case entity.ConversionStatusDraft, entity.ConversionStatusPending,
			entity.ConversionStatusApproved, entity.ConversionStatusCancelled:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.convRepo.List(repository.ConversionFilter{
		Status: q.Status,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

// Stats agregados: conteo por estado, costo/valor acumulado aprobado y fecha
// de la última aprobación.
func (uc *UseCase) Stats() (*repository.ConversionStats, error) {
	return uc.convRepo.Stats()
}

// Cancel marca la conversión CANCELLED sin tocar stock. Solo desde DRAFT o
// PENDING; los estados terminales no admiten transiciones.
func (uc *UseCase) Cancel(id string) (*entity.Conversion, error) {
	conv, err := uc.convRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if conv.IsTerminal() {
		return nil, domain.ErrInvalidState
	}
	conv.Status = entity.ConversionStatusCancelled
	conv.UpdatedAt = time.Now()
	if err := uc.convRepo.Update(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Delete borra la cabecera y sus líneas. Permitido solo desde DRAFT o
// CANCELLED (una conversión aprobada ya movió stock y es parte de la auditoría).
func (uc *UseCase) Delete(id string) error {
	conv, err := uc.convRepo.GetByID(id)
	if err != nil {
		return err
	}
	if conv == nil {
		return domain.ErrNotFound
	}
	if conv.Status != entity.ConversionStatusDraft && conv.Status != entity.ConversionStatusCancelled {
		return domain.ErrInvalidState
	}
	return uc.convRepo.Delete(id)
}

// editableConversion carga la conversión y verifica que admita mutación de líneas.
func (uc *UseCase) editableConversion(id string) (*entity.Conversion, error) {
	conv, err := uc.convRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !conv.Editable() {
		return nil, domain.ErrInvalidState
	}
	return conv, nil
}

// recomputeTotals recalcula los totales de cabecera como la suma de las líneas.
func (uc *UseCase) recomputeTotals(conv *entity.Conversion) error {
	inputs, err := uc.convRepo.ListInputItems(conv.ID)
	if err != nil {
		return err
	}
	outputs, err := uc.convRepo.ListOutputItems(conv.ID)
	if err != nil {
		return err
	}
	totalIn := decimal.Zero
	for _, it := range inputs {
		totalIn = totalIn.Add(it.TotalCost)
	}
	totalOut := decimal.Zero
	for _, it := range outputs {
		totalOut = totalOut.Add(it.TotalValue)
	}
	conv.TotalInputCost = totalIn
	conv.TotalOutputCost = totalOut
	conv.UpdatedAt = time.Now()
	return uc.convRepo.Update(conv)
}
