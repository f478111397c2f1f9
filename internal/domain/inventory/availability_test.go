package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/inventory"
)

func ingredient(qty, stock string) inventory.IngredientStock {
	return inventory.IngredientStock{
		Recipe: &entity.TemplateRecipe{Quantity: decimal.RequireFromString(qty)},
		Stock:  decimal.RequireFromString(stock),
	}
}

func TestAvailableUnits_CuelloDeBotella(t *testing.T) {
	// Camiseta Roja M: 2 de tela roja (stock 10) y 1 juego de botones (stock 3)
	// => min(floor(10/2), floor(3/1)) = 3
	got := inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("2", "10"),
		ingredient("1", "3"),
	})
	assert.Equal(t, int64(3), got)
}

func TestAvailableUnits_SinRecetas(t *testing.T) {
	assert.Equal(t, int64(0), inventory.AvailableUnits(nil))
	assert.Equal(t, int64(0), inventory.AvailableUnits([]inventory.IngredientStock{}))
}

func TestAvailableUnits_UnSoloIngrediente(t *testing.T) {
	got := inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("3", "10"),
	})
	assert.Equal(t, int64(3), got)
}

func TestAvailableUnits_CantidadFraccionaria(t *testing.T) {
	// 0.5 m por unidad con 7.3 m en stock => 14 unidades
	got := inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("0.5", "7.3"),
	})
	assert.Equal(t, int64(14), got)
}

func TestAvailableUnits_CantidadNoPositivaSeIgnora(t *testing.T) {
	// La fila con cantidad 0 no debe dividir ni contar como ilimitado
	got := inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("0", "100"),
		ingredient("2", "10"),
	})
	assert.Equal(t, int64(5), got)

	// Solo filas inválidas => no producible
	got = inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("-1", "100"),
	})
	assert.Equal(t, int64(0), got)
}

func TestAvailableUnits_StockNegativoNoProduce(t *testing.T) {
	got := inventory.AvailableUnits([]inventory.IngredientStock{
		ingredient("2", "-4"),
		ingredient("1", "50"),
	})
	assert.Equal(t, int64(0), got)
}
