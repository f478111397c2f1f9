package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InputBatch representa un lote físico de un insumo (unidad atómica de stock).
//
// Semántica de reserva: Reserve descuenta CurrentQuantity y suma
// ReservedQuantity a la vez, de modo que CurrentQuantity es siempre el stock
// gastable y la salida definitiva (SALIDA) solo libera ReservedQuantity.
// "Disponible para reservar" = CurrentQuantity - ReservedQuantity.
type InputBatch struct {
	ID               string
	InputID          string
	BatchNumber      string // único por insumo, asignado por el operador
	InitialQuantity  decimal.Decimal // inmutable desde la entrada
	CurrentQuantity  decimal.Decimal
	ReservedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
	PurchaseDate     *time.Time
	ExpiryDate       *time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TotalCost costo total del lote a partir de la cantidad inicial.
func (b *InputBatch) TotalCost() decimal.Decimal {
	return b.InitialQuantity.Mul(b.UnitCost)
}

// AvailableQuantity cantidad disponible para reservar.
func (b *InputBatch) AvailableQuantity() decimal.Decimal {
	return b.CurrentQuantity.Sub(b.ReservedQuantity)
}
