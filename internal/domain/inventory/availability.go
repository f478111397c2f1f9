package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// IngredientStock stock actual de una variante de insumo requerida por una receta.
type IngredientStock struct {
	Recipe *entity.TemplateRecipe
	Stock  decimal.Decimal
}

// AvailableUnits calcula cuántas unidades terminadas puede producir una
// variante dada su lista de materiales (regla del cuello de botella):
// min_i floor(stock_i / cantidad_i). Sin recetas no se puede producir (0).
// Filas con cantidad <= 0 son entrada inválida y se ignoran (nunca dividir).
func AvailableUnits(ingredients []IngredientStock) int64 {
	available := int64(-1)
	for _, ing := range ingredients {
		if ing.Recipe == nil || !ing.Recipe.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		units := ing.Stock.Div(ing.Recipe.Quantity).Floor().IntPart()
		if units < 0 {
			units = 0
		}
		if available < 0 || units < available {
			available = units
		}
	}
	if available < 0 {
		return 0
	}
	return available
}
