package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// ConversionFilter filtros para listar conversiones.
type ConversionFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ConversionStats agregados del flujo de conversión.
type ConversionStats struct {
	CountByStatus      map[string]int
	TotalApprovedCost  decimal.Decimal // costo de insumos de conversiones aprobadas
	TotalApprovedValue decimal.Decimal // valor de salida de conversiones aprobadas
	LastApprovedAt     *time.Time
}

// ConversionRepository puerto de persistencia para la conversión y sus líneas.
// Las líneas son propiedad exclusiva de la cabecera: Delete borra en cascada.
type ConversionRepository interface {
	Create(conversion *entity.Conversion) error
	GetByID(id string) (*entity.Conversion, error)
	// GetByIDForUpdate bloquea la cabecera (SELECT FOR UPDATE) durante la aprobación.
	GetByIDForUpdate(id string) (*entity.Conversion, error)
	Update(conversion *entity.Conversion) error
	Delete(id string) error
	// NextNumber asigna el siguiente consecutivo CNV-YYYY-NNNN del año.
	NextNumber(year int) (string, error)
	List(filter ConversionFilter) ([]*entity.Conversion, error)
	Stats() (*ConversionStats, error)

	AddInputItem(item *entity.ConversionInputItem) error
	UpdateInputItem(item *entity.ConversionInputItem) error
	RemoveInputItem(itemID string) error
	GetInputItem(itemID string) (*entity.ConversionInputItem, error)
	ListInputItems(conversionID string) ([]*entity.ConversionInputItem, error)

	AddOutputItem(item *entity.ConversionOutputItem) error
	UpdateOutputItem(item *entity.ConversionOutputItem) error
	RemoveOutputItem(itemID string) error
	GetOutputItem(itemID string) (*entity.ConversionOutputItem, error)
	ListOutputItems(conversionID string) ([]*entity.ConversionOutputItem, error)
}
