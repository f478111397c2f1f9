package recipe_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/application/recipe"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRecipeRepo struct {
	recipes     map[string]*entity.TemplateRecipe
	failGetPair error
}

func (r *fakeRecipeRepo) Upsert(rec *entity.TemplateRecipe) error {
	copied := *rec
	r.recipes[rec.ID] = &copied
	return nil
}

func (r *fakeRecipeRepo) GetByID(id string) (*entity.TemplateRecipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (r *fakeRecipeRepo) GetByVariantAndInput(variantID, inputVariantID string) (*entity.TemplateRecipe, error) {
	if r.failGetPair != nil {
		return nil, r.failGetPair
	}
	for _, rec := range r.recipes {
		if rec.VariantID == variantID && rec.InputVariantID == inputVariantID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRecipeRepo) ListByVariant(variantID string) ([]*entity.TemplateRecipe, error) {
	var out []*entity.TemplateRecipe
	for _, rec := range r.recipes {
		if rec.VariantID == variantID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.TemplateRecipe, error) {
	var out []*entity.TemplateRecipe
	for _, rec := range r.recipes {
		if rec.ProductID == productID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Delete(id string) error {
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

type fakeInputVariantRepo struct {
	variants map[string]*entity.InputVariant
}

func (r *fakeInputVariantRepo) GetByID(id string) (*entity.InputVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (r *fakeInputVariantRepo) GetByIDForUpdate(id string) (*entity.InputVariant, error) {
	return r.GetByID(id)
}

func (r *fakeInputVariantRepo) UpdateStock(id string, stock decimal.Decimal) error {
	v, ok := r.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentStock = stock
	return nil
}

func (r *fakeInputVariantRepo) ListByInput(inputID string) ([]*entity.InputVariant, error) {
	var out []*entity.InputVariant
	for _, v := range r.variants {
		if v.InputID == inputID {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeTemplateVariantRepo struct {
	variants map[string]*entity.TemplateVariant
}

func (r *fakeTemplateVariantRepo) GetByID(id string) (*entity.TemplateVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (r *fakeTemplateVariantRepo) GetByIDForUpdate(id string) (*entity.TemplateVariant, error) {
	return r.GetByID(id)
}

func (r *fakeTemplateVariantRepo) UpdateStock(id string, stock decimal.Decimal) error {
	v, ok := r.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentStock = stock
	return nil
}

func (r *fakeTemplateVariantRepo) ListByProduct(productID string) ([]*entity.TemplateVariant, error) {
	var out []*entity.TemplateVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeInputRepo struct {
	inputs map[string]*entity.Input
}

func (r *fakeInputRepo) Create(in *entity.Input) error { r.inputs[in.ID] = in; return nil }
func (r *fakeInputRepo) GetByID(id string) (*entity.Input, error) {
	return r.inputs[id], nil
}
func (r *fakeInputRepo) GetByCode(code string) (*entity.Input, error) { return nil, nil }
func (r *fakeInputRepo) Update(in *entity.Input) error                { return nil }
func (r *fakeInputRepo) UpdateCurrentStock(inputID string, stock decimal.Decimal) error {
	return nil
}
func (r *fakeInputRepo) List(limit, offset int) ([]*entity.Input, error) { return nil, nil }
func (r *fakeInputRepo) ListLowStock() ([]*entity.Input, error)          { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: camiseta (roja M y azul M) con tela y botones como ingredientes
// ──────────────────────────────────────────────────────────────────────────────

type recipeFixture struct {
	uc            *recipe.UseCase
	recipeRepo    *fakeRecipeRepo
	inputVariants *fakeInputVariantRepo
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()
	recipeRepo := &fakeRecipeRepo{recipes: make(map[string]*entity.TemplateRecipe)}
	inputVariants := &fakeInputVariantRepo{variants: map[string]*entity.InputVariant{
		"iv-tela-roja": {
			ID: "iv-tela-roja", InputID: "in-tela", ColorID: "rojo", SizeID: "M",
			CurrentStock: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(500), IsActive: true,
		},
		"iv-botones-rojo": {
			ID: "iv-botones-rojo", InputID: "in-botones", ColorID: "rojo", SizeID: "M",
			CurrentStock: decimal.NewFromInt(7), UnitCost: decimal.NewFromInt(100), IsActive: true,
		},
	}}
	templVariants := &fakeTemplateVariantRepo{variants: map[string]*entity.TemplateVariant{
		"tv-roja": {
			ID: "tv-roja", ProductID: "prod-camiseta", ColorID: "rojo", SizeID: "M",
			Name: "Camiseta Roja M", Price: decimal.NewFromInt(5000), IsActive: true,
		},
		"tv-azul": {
			ID: "tv-azul", ProductID: "prod-camiseta", ColorID: "azul", SizeID: "M",
			Name: "Camiseta Azul M", Price: decimal.NewFromInt(5000), IsActive: true,
		},
	}}
	inputRepo := &fakeInputRepo{inputs: map[string]*entity.Input{
		"in-tela":    {ID: "in-tela", Code: "TELA", Name: "Tela"},
		"in-botones": {ID: "in-botones", Code: "BOT-01", Name: "Juego de botones"},
	}}
	return &recipeFixture{
		uc:            recipe.NewUseCase(recipeRepo, inputVariants, templVariants, inputRepo),
		recipeRepo:    recipeRepo,
		inputVariants: inputVariants,
	}
}

func (f *recipeFixture) upsert(t *testing.T, variantID, inputVariantID string, qty int64) *entity.TemplateRecipe {
	t.Helper()
	rec, err := f.uc.Upsert(dto.UpsertRecipeRequest{
		VariantID:      variantID,
		InputVariantID: inputVariantID,
		Quantity:       decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
	return rec
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_CreaYActualizaSinDuplicar(t *testing.T) {
	f := newRecipeFixture(t)

	created := f.upsert(t, "tv-roja", "iv-tela-roja", 2)
	assert.Equal(t, "prod-camiseta", created.ProductID, "hereda la plantilla de la variante")

	// Segundo upsert del mismo par: misma fila, cantidad nueva
	updated := f.upsert(t, "tv-roja", "iv-tela-roja", 3)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Len(t, f.recipeRepo.recipes, 1)
}

func TestUpsert_CantidadNoPositivaInvalida(t *testing.T) {
	f := newRecipeFixture(t)

	_, err := f.uc.Upsert(dto.UpsertRecipeRequest{
		VariantID:      "tv-roja",
		InputVariantID: "iv-tela-roja",
		Quantity:       decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Upsert(dto.UpsertRecipeRequest{
		VariantID:      "tv-roja",
		InputVariantID: "iv-tela-roja",
		Quantity:       decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_ErrorDeLecturaDelParSePropaga(t *testing.T) {
	f := newRecipeFixture(t)
	readErr := errors.New("conexión perdida")
	f.recipeRepo.failGetPair = readErr

	// Un fallo transitorio no debe tratarse como "el par no existe"
	_, err := f.uc.Upsert(dto.UpsertRecipeRequest{
		VariantID:      "tv-roja",
		InputVariantID: "iv-tela-roja",
		Quantity:       decimal.NewFromInt(2),
	})
	assert.ErrorIs(t, err, readErr)
	assert.Empty(t, f.recipeRepo.recipes, "no se escribe nada con el chequeo a ciegas")
}

func TestUpsert_VarianteInexistente(t *testing.T) {
	f := newRecipeFixture(t)

	_, err := f.uc.Upsert(dto.UpsertRecipeRequest{
		VariantID:      "tv-fantasma",
		InputVariantID: "iv-tela-roja",
		Quantity:       decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailableStock_ReglaDelCuelloDeBotella(t *testing.T) {
	f := newRecipeFixture(t)
	f.upsert(t, "tv-roja", "iv-tela-roja", 2)   // 10 m / 2 = 5
	f.upsert(t, "tv-roja", "iv-botones-rojo", 3) // 7 juegos / 3 = 2 (cuello de botella)

	units, err := f.uc.AvailableStock("tv-roja")
	require.NoError(t, err)
	assert.Equal(t, int64(2), units)
}

func TestAvailableStock_SinRecetaNoEsProducible(t *testing.T) {
	f := newRecipeFixture(t)

	units, err := f.uc.AvailableStock("tv-roja")
	require.NoError(t, err)
	assert.Equal(t, int64(0), units)
}

func TestAvailableStock_IngredienteDesaparecidoDaCero(t *testing.T) {
	f := newRecipeFixture(t)
	f.upsert(t, "tv-roja", "iv-tela-roja", 2)

	// El ingrediente se borra del catálogo después de crear la receta
	delete(f.inputVariants.variants, "iv-tela-roja")

	units, err := f.uc.AvailableStock("tv-roja")
	require.NoError(t, err)
	assert.Equal(t, int64(0), units)
}

func TestAvailableStockForAllVariants(t *testing.T) {
	f := newRecipeFixture(t)
	f.upsert(t, "tv-roja", "iv-tela-roja", 2) // 10/2 = 5; tv-azul sin receta

	out, err := f.uc.AvailableStockForAllVariants("prod-camiseta")
	require.NoError(t, err)
	require.Len(t, out, 2)

	byVariant := make(map[string]int64, len(out))
	for _, r := range out {
		byVariant[r.VariantID] = r.AvailableUnits
	}
	assert.Equal(t, int64(5), byVariant["tv-roja"])
	assert.Equal(t, int64(0), byVariant["tv-azul"])
}

func TestDelete_RecetaInexistente(t *testing.T) {
	f := newRecipeFixture(t)

	assert.ErrorIs(t, f.uc.Delete("no-existe"), domain.ErrNotFound)
}

func TestAssociateInputs_EmparejaPorColorYTalla(t *testing.T) {
	f := newRecipeFixture(t)

	// iv-tela-roja e iv-botones-rojo solo calzan con la variante roja M
	created, err := f.uc.AssociateInputsToTemplate("prod-camiseta", dto.AssociateInputsRequest{
		InputIDs: []string{"in-tela", "in-botones"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	recipes, err := f.uc.ListByVariant("tv-roja")
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	for _, r := range recipes {
		assert.True(t, r.Quantity.Equal(decimal.NewFromInt(1)), "cantidad 1 por defecto")
	}

	azul, err := f.uc.ListByVariant("tv-azul")
	require.NoError(t, err)
	assert.Empty(t, azul, "sin variante de insumo azul no hay emparejamiento")
}

func TestAssociateInputs_EsIdempotente(t *testing.T) {
	f := newRecipeFixture(t)
	req := dto.AssociateInputsRequest{InputIDs: []string{"in-tela"}}

	first, err := f.uc.AssociateInputsToTemplate("prod-camiseta", req)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := f.uc.AssociateInputsToTemplate("prod-camiseta", req)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "los pares existentes no se recrean")
}

func TestAssociateInputs_SinInsumosEsInvalido(t *testing.T) {
	f := newRecipeFixture(t)

	_, err := f.uc.AssociateInputsToTemplate("prod-camiseta", dto.AssociateInputsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
