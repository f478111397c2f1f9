package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ repository.TemplateRecipeRepository = (*TemplateRecipeRepo)(nil)

const recipeColumns = `id, product_id, variant_id, input_variant_id, quantity, created_at, updated_at`

// TemplateRecipeRepo implementación de TemplateRecipeRepository sobre
// PostgreSQL (usable con pool o tx).
type TemplateRecipeRepo struct {
	q Querier
}

// NewTemplateRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRecipeRepository(q Querier) *TemplateRecipeRepo {
	return &TemplateRecipeRepo{q: q}
}

// Upsert inserta la receta o actualiza la cantidad si el par
// (variante, insumo-variante) ya existe.
func (r *TemplateRecipeRepo) Upsert(recipe *entity.TemplateRecipe) error {
	query := `
		INSERT INTO template_recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (variant_id, input_variant_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductID, recipe.VariantID, recipe.InputVariantID,
		recipe.Quantity, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por ID.
func (r *TemplateRecipeRepo) GetByID(id string) (*entity.TemplateRecipe, error) {
	return r.getOne(`SELECT `+recipeColumns+` FROM template_recipes WHERE id = $1`, id)
}

// GetByVariantAndInput obtiene la receta del par (variante, insumo-variante).
func (r *TemplateRecipeRepo) GetByVariantAndInput(variantID, inputVariantID string) (*entity.TemplateRecipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM template_recipes WHERE variant_id = $1 AND input_variant_id = $2`
	var rec entity.TemplateRecipe
	err := r.q.QueryRow(context.Background(), query, variantID, inputVariantID).Scan(
		&rec.ID, &rec.ProductID, &rec.VariantID, &rec.InputVariantID,
		&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by variant and input: %w", err)
	}
	return &rec, nil
}

func (r *TemplateRecipeRepo) getOne(query string, arg any) (*entity.TemplateRecipe, error) {
	var rec entity.TemplateRecipe
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&rec.ID, &rec.ProductID, &rec.VariantID, &rec.InputVariantID,
		&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// ListByVariant lista la lista de materiales de una variante producible.
func (r *TemplateRecipeRepo) ListByVariant(variantID string) ([]*entity.TemplateRecipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM template_recipes WHERE variant_id = $1 ORDER BY created_at`
	return r.list(query, variantID)
}

// ListByProduct lista todas las recetas de las variantes de una plantilla.
func (r *TemplateRecipeRepo) ListByProduct(productID string) ([]*entity.TemplateRecipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM template_recipes WHERE product_id = $1 ORDER BY variant_id, created_at`
	return r.list(query, productID)
}

func (r *TemplateRecipeRepo) list(query string, arg any) ([]*entity.TemplateRecipe, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.TemplateRecipe
	for rows.Next() {
		var rec entity.TemplateRecipe
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.VariantID, &rec.InputVariantID,
			&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Delete elimina una receta.
func (r *TemplateRecipeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM template_recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
