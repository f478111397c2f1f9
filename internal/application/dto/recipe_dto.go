package dto

import (
	"github.com/shopspring/decimal"
)

// UpsertRecipeRequest body para PUT /api/recipes (una fila por par
// variante producible / variante de insumo).
type UpsertRecipeRequest struct {
	ProductID      string          `json:"product_id"`
	VariantID      string          `json:"variant_id"`
	InputVariantID string          `json:"input_variant_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// RecipeResponse representación de una fila de receta.
type RecipeResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	VariantID      string          `json:"variant_id"`
	InputVariantID string          `json:"input_variant_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// AvailableStockResponse unidades producibles de una variante (regla del
// cuello de botella sobre sus ingredientes).
type AvailableStockResponse struct {
	VariantID      string `json:"variant_id"`
	AvailableUnits int64  `json:"available_units"`
}

// AssociateInputsRequest body para POST /api/templates/:id/associate-inputs.
type AssociateInputsRequest struct {
	InputIDs []string `json:"input_ids"`
}

// AssociateInputsResponse resultado de la asociación masiva.
type AssociateInputsResponse struct {
	RecipesCreated int `json:"recipes_created"`
}
