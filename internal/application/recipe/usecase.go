package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	domaininv "github.com/tu-usuario/insumos-api/internal/domain/inventory"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// UseCase administra la lista de materiales (receta) de las variantes
// producibles y responde las consultas de disponibilidad (regla del cuello de
// botella). La disponibilidad se calcula siempre bajo demanda: el stock de los
// ingredientes cambia de forma continua y no se cachea.
type UseCase struct {
	recipeRepo       repository.TemplateRecipeRepository
	inputVariantRepo repository.InputVariantRepository
	templateVarRepo  repository.TemplateVariantRepository
	inputRepo        repository.InputRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	recipeRepo repository.TemplateRecipeRepository,
	inputVariantRepo repository.InputVariantRepository,
	templateVarRepo repository.TemplateVariantRepository,
	inputRepo repository.InputRepository,
) *UseCase {
	return &UseCase{
		recipeRepo:       recipeRepo,
		inputVariantRepo: inputVariantRepo,
		templateVarRepo:  templateVarRepo,
		inputRepo:        inputRepo,
	}
}

// Upsert crea o actualiza la fila de receta del par (variante, insumo-variante).
// Cantidades no positivas son entrada inválida, nunca llegan al calculador.
func (uc *UseCase) Upsert(in dto.UpsertRecipeRequest) (*entity.TemplateRecipe, error) {
	if in.VariantID == "" || in.InputVariantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.templateVarRepo.GetByID(in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	ingredient, err := uc.inputVariantRepo.GetByID(in.InputVariantID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	recipe := &entity.TemplateRecipe{
		ID:             uuid.New().String(),
		ProductID:      variant.ProductID,
		VariantID:      in.VariantID,
		InputVariantID: in.InputVariantID,
		Quantity:       in.Quantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	existing, err := uc.recipeRepo.GetByVariantAndInput(in.VariantID, in.InputVariantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		recipe.ID = existing.ID
		recipe.CreatedAt = existing.CreatedAt
	}
	if err := uc.recipeRepo.Upsert(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListByVariant lista la receta de una variante producible.
func (uc *UseCase) ListByVariant(variantID string) ([]*entity.TemplateRecipe, error) {
	return uc.recipeRepo.ListByVariant(variantID)
}

// ListByProduct lista todas las recetas de una plantilla.
func (uc *UseCase) ListByProduct(productID string) ([]*entity.TemplateRecipe, error) {
	return uc.recipeRepo.ListByProduct(productID)
}

// Delete elimina una fila de receta.
func (uc *UseCase) Delete(id string) error {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.recipeRepo.Delete(id)
}

// AvailableStock unidades producibles de una variante: mínimo de
// floor(stock del ingrediente / cantidad por unidad) sobre toda la receta.
// Sin recetas la variante no es producible (0).
func (uc *UseCase) AvailableStock(variantID string) (int64, error) {
	recipes, err := uc.recipeRepo.ListByVariant(variantID)
	if err != nil {
		return 0, err
	}
	ingredients := make([]domaininv.IngredientStock, 0, len(recipes))
	for _, r := range recipes {
		variant, err := uc.inputVariantRepo.GetByID(r.InputVariantID)
		if err != nil {
			return 0, err
		}
		if variant == nil {
			// Ingrediente desaparecido: no producible
			return 0, nil
		}
		ingredients = append(ingredients, domaininv.IngredientStock{Recipe: r, Stock: variant.CurrentStock})
	}
	return domaininv.AvailableUnits(ingredients), nil
}

// AvailableStockForAllVariants disponibilidad de cada variante de la plantilla.
func (uc *UseCase) AvailableStockForAllVariants(productID string) ([]dto.AvailableStockResponse, error) {
	variants, err := uc.templateVarRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableStockResponse, 0, len(variants))
	for _, v := range variants {
		units, err := uc.AvailableStock(v.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.AvailableStockResponse{VariantID: v.ID, AvailableUnits: units})
	}
	return out, nil
}

// AssociateInputsToTemplate empareja variantes de insumo con las variantes de
// la plantilla por color/talla y crea las recetas en masa (cantidad 1 por
// defecto; se ajusta después con Upsert). Devuelve cuántas recetas creó.
func (uc *UseCase) AssociateInputsToTemplate(productID string, in dto.AssociateInputsRequest) (int, error) {
	if len(in.InputIDs) == 0 {
		return 0, domain.ErrInvalidInput
	}
	variants, err := uc.templateVarRepo.ListByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(variants) == 0 {
		return 0, domain.ErrNotFound
	}

	created := 0
	now := time.Now()
	for _, inputID := range in.InputIDs {
		input, err := uc.inputRepo.GetByID(inputID)
		if err != nil {
			return created, err
		}
		if input == nil {
			return created, domain.ErrNotFound
		}
		inputVariants, err := uc.inputVariantRepo.ListByInput(inputID)
		if err != nil {
			return created, err
		}
		for _, tv := range variants {
			for _, iv := range inputVariants {
				if iv.ColorID != tv.ColorID || iv.SizeID != tv.SizeID {
					continue
				}
				existing, err := uc.recipeRepo.GetByVariantAndInput(tv.ID, iv.ID)
				if err != nil {
					return created, err
				}
				if existing != nil {
					continue
				}
				recipe := &entity.TemplateRecipe{
					ID:             uuid.New().String(),
					ProductID:      productID,
					VariantID:      tv.ID,
					InputVariantID: iv.ID,
					Quantity:       decimal.NewFromInt(1),
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := uc.recipeRepo.Upsert(recipe); err != nil {
					return created, err
				}
				created++
			}
		}
	}
	return created, nil
}
