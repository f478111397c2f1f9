package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateConversionRequest body para POST /api/conversions (conversión MANUAL en borrador).
type CreateConversionRequest struct {
	ConversionDate *time.Time `json:"conversion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// CreateFromTemplateRequest body para POST /api/conversions/from-template.
// Deriva las líneas de entrada de la receta de la variante de plantilla y crea
// una línea de salida por la variante objetivo.
type CreateFromTemplateRequest struct {
	TemplateVariantID string          `json:"template_variant_id"`
	OutputVariantID   string          `json:"output_variant_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Notes             string          `json:"notes,omitempty"`
}

// AddInputItemRequest body para POST /api/conversions/:id/inputs.
type AddInputItemRequest struct {
	InputVariantID string          `json:"input_variant_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// AddOutputItemRequest body para POST /api/conversions/:id/outputs.
// UnitPrice vacío toma el precio actual de la variante.
type AddOutputItemRequest struct {
	VariantID string           `json:"variant_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateItemRequest body para PUT de líneas de entrada/salida.
type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ConversionInputItemResponse línea de consumo congelada.
type ConversionInputItemResponse struct {
	ID             string          `json:"id"`
	InputVariantID string          `json:"input_variant_id"`
	InputCode      string          `json:"input_code"`
	InputName      string          `json:"input_name"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// ConversionOutputItemResponse línea de producción congelada.
type ConversionOutputItemResponse struct {
	ID          string          `json:"id"`
	VariantID   string          `json:"variant_id"`
	VariantName string          `json:"variant_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// ConversionResponse cabecera con sus líneas.
type ConversionResponse struct {
	ID               string                         `json:"id"`
	ConversionNumber string                         `json:"conversion_number"`
	ConversionType   string                         `json:"conversion_type"`
	TemplateID       string                         `json:"template_id,omitempty"`
	Status           string                         `json:"status"`
	ConversionDate   time.Time                      `json:"conversion_date"`
	Notes            string                         `json:"notes,omitempty"`
	TotalInputCost   decimal.Decimal                `json:"total_input_cost"`
	TotalOutputCost  decimal.Decimal                `json:"total_output_cost"`
	CreatedByName    string                         `json:"created_by_name,omitempty"`
	ApprovedByName   string                         `json:"approved_by_name,omitempty"`
	ApprovedAt       *time.Time                     `json:"approved_at,omitempty"`
	CreatedAt        time.Time                      `json:"created_at"`
	InputItems       []ConversionInputItemResponse  `json:"input_items"`
	OutputItems      []ConversionOutputItemResponse `json:"output_items"`
}

// ConversionListQuery filtros para GET /api/conversions.
type ConversionListQuery struct {
	Status string     `query:"status"`
	From   *time.Time `query:"from"`
	To     *time.Time `query:"to"`
	PageRequest
}

// ConversionStatsResponse agregados del flujo.
type ConversionStatsResponse struct {
	CountByStatus      map[string]int  `json:"count_by_status"`
	TotalApprovedCost  decimal.Decimal `json:"total_approved_cost"`
	TotalApprovedValue decimal.Decimal `json:"total_approved_value"`
	LastApprovedAt     *time.Time      `json:"last_approved_at,omitempty"`
}
