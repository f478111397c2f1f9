package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateRecipe asocia una variante producible de plantilla con una variante
// de insumo requerida y la cantidad por unidad terminada (lista de materiales).
// Unicidad: una fila por par (variante, insumo-variante).
type TemplateRecipe struct {
	ID               string
	ProductID        string // plantilla dueña de la variante producible
	VariantID        string // variante producible
	InputVariantID   string // variante de insumo requerida
	Quantity         decimal.Decimal // requerida por unidad terminada, > 0
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
