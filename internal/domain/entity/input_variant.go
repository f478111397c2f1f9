package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InputVariant es un insumo específico por color/talla, usado por las recetas.
// Su stock es independiente de los lotes del insumo padre y se muta directo,
// con su propio libro de movimientos.
type InputVariant struct {
	ID           string
	InputID      string
	ColorID      string
	SizeID       string
	CurrentStock decimal.Decimal
	UnitCost     decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InputVariantMovement hecho inmutable del libro de movimientos de una variante.
type InputVariantMovement struct {
	ID            string
	VariantID     string
	Type          string // mismos tipos que InputBatchMovement
	Quantity      decimal.Decimal
	Reason        string
	Reference     string // id de conversión u orden
	CreatedAt     time.Time
	CreatedBy     string
	CreatedByName string
}
