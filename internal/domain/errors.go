package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidState      = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla un faltante de stock: qué recurso, cuánto se
// pidió y cuánto había disponible. Unwrap devuelve ErrInsufficientStock para
// que los handlers puedan seguir usando errors.Is.
type InsufficientStockError struct {
	Resource  string // código o nombre del lote/variante escaso
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: solicitado %s, disponible %s",
		e.Resource, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error tipado de faltante.
func NewInsufficientStock(resource string, requested, available decimal.Decimal) error {
	return &InsufficientStockError{Resource: resource, Requested: requested, Available: available}
}
