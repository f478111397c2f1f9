package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInputRequest body para POST /api/inputs.
type CreateInputRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	MinStock    decimal.Decimal `json:"min_stock"`
	MaxStock    decimal.Decimal `json:"max_stock"`
}

// UpdateInputRequest body para PUT /api/inputs/:id (campos opcionales).
type UpdateInputRequest struct {
	Name        *string          `json:"name,omitempty"`
	UnitMeasure *string          `json:"unit_measure,omitempty"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock    *decimal.Decimal `json:"max_stock,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// InputResponse representación de un insumo.
type InputResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	UnitMeasure  string          `json:"unit_measure"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}
