package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/inputs/:id/batches (entrada de mercancía).
type CreateBatchRequest struct {
	BatchNumber  string          `json:"batch_number"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// UpdateBatchRequest body para PUT /api/batches/:id (metadatos; las cantidades
// se mueven solo vía ajuste/reserva/liberación/salida).
type UpdateBatchRequest struct {
	BatchNumber  *string          `json:"batch_number,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	PurchaseDate *time.Time       `json:"purchase_date,omitempty"`
	ExpiryDate   *time.Time       `json:"expiry_date,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// AdjustQuantityRequest body para POST /api/batches/:id/adjust.
type AdjustQuantityRequest struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
}

// ReserveRequest body para POST /api/batches/:id/reserve y /release.
type ReserveRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	OrderRef string          `json:"order_ref"`
}

// OutputRequest body para POST /api/batches/:id/output (consumo de lo reservado).
type OutputRequest struct {
	Quantity      decimal.Decimal `json:"quantity"`
	ProductionRef string          `json:"production_ref"`
}

// BatchResponse representación de un lote.
type BatchResponse struct {
	ID                string          `json:"id"`
	InputID           string          `json:"input_id"`
	BatchNumber       string          `json:"batch_number"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	PurchaseDate      *time.Time      `json:"purchase_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// MovementResponse representación de un movimiento del libro de lotes.
type MovementResponse struct {
	ID            string          `json:"id"`
	InputID       string          `json:"input_id"`
	BatchID       string          `json:"batch_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedByName string          `json:"created_by_name,omitempty"`
}

// ListMovementsQuery filtros para listar movimientos por insumo.
type ListMovementsQuery struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}
