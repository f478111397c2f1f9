package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input representa un insumo (materia prima) del taller.
// CurrentStock es una proyección recalculable: la fuente de verdad son los
// lotes activos y solo el agregador de stock escribe este campo.
type Input struct {
	ID           string
	Code         string // único por catálogo
	Name         string
	UnitMeasure  string // unidades, metros, kg, etc.
	UnitCost     decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
