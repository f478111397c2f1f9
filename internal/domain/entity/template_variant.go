package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateVariant es la variante producible (color/talla) de una plantilla.
// Es el lado "producto terminado" de una conversión: su stock se acredita al
// aprobar y su libro de movimientos registra cada crédito.
type TemplateVariant struct {
	ID           string
	ProductID    string
	ColorID      string
	SizeID       string
	Name         string
	Price        decimal.Decimal
	CurrentStock decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TemplateVariantMovement hecho inmutable del libro de movimientos de una
// variante producible (espejo de InputVariantMovement en el lado de salida).
type TemplateVariantMovement struct {
	ID            string
	VariantID     string
	Type          string // mismos tipos ENTRADA/SALIDA/AJUSTE
	Quantity      decimal.Decimal
	Reason        string
	Reference     string // id de conversión
	CreatedAt     time.Time
	CreatedBy     string
	CreatedByName string
}
