package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del flujo de conversión de inventario.
// DRAFT -> PENDING -> APPROVED, con DRAFT|PENDING -> CANCELLED.
// APPROVED y CANCELLED son terminales.
const (
	ConversionStatusDraft     = "DRAFT"
	ConversionStatusPending   = "PENDING"
	ConversionStatusApproved  = "APPROVED"
	ConversionStatusCancelled = "CANCELLED"
)

// Tipos de conversión.
const (
	ConversionTypeManual   = "MANUAL"
	ConversionTypeTemplate = "TEMPLATE"
)

// Conversion es la cabecera del flujo que transforma stock de insumos en
// stock de producto terminado, con aprobación auditada.
type Conversion struct {
	ID               string
	ConversionNumber string // CNV-YYYY-NNNN, secuencia por año
	ConversionType   string // MANUAL | TEMPLATE
	TemplateID       string // plantilla origen si ConversionType = TEMPLATE
	Status           string
	ConversionDate   time.Time
	Notes            string
	TotalInputCost   decimal.Decimal // suma de costos de línea de entrada
	TotalOutputCost  decimal.Decimal // suma de valores de línea de salida
	CreatedBy        string
	CreatedByName    string
	ApprovedBy       string
	ApprovedByName   string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsTerminal indica si el estado ya no admite transiciones.
func (c *Conversion) IsTerminal() bool {
	return c.Status == ConversionStatusApproved || c.Status == ConversionStatusCancelled
}

// Editable indica si las líneas pueden mutarse (solo en borrador).
func (c *Conversion) Editable() bool {
	return c.Status == ConversionStatusDraft
}

// ConversionInputItem es la foto congelada de una línea de consumo de insumo.
// Una fila por variante de insumo por conversión.
type ConversionInputItem struct {
	ID             string
	ConversionID   string
	InputVariantID string
	InputCode      string // identidad congelada al momento de agregar la línea
	InputName      string
	UnitCost       decimal.Decimal
	Quantity       decimal.Decimal
	TotalCost      decimal.Decimal // Quantity * UnitCost
	CreatedAt      time.Time
}

// ConversionOutputItem es la foto congelada de una línea de producción.
// Una fila por variante de salida por conversión.
type ConversionOutputItem struct {
	ID           string
	ConversionID string
	VariantID    string
	VariantName  string // identidad congelada
	UnitPrice    decimal.Decimal
	Quantity     decimal.Decimal
	TotalValue   decimal.Decimal // Quantity * UnitPrice
	CreatedAt    time.Time
}
