package repository

import (
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// TemplateRecipeRepository puerto de persistencia para la lista de materiales.
type TemplateRecipeRepository interface {
	Upsert(recipe *entity.TemplateRecipe) error
	GetByID(id string) (*entity.TemplateRecipe, error)
	GetByVariantAndInput(variantID, inputVariantID string) (*entity.TemplateRecipe, error)
	ListByVariant(variantID string) ([]*entity.TemplateRecipe, error)
	ListByProduct(productID string) ([]*entity.TemplateRecipe, error)
	Delete(id string) error
}
