package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// InputRepository define el puerto de persistencia para insumos (DIP).
// UpdateCurrentStock es de uso exclusivo del agregador de stock: ningún otro
// camino escribe Input.CurrentStock.
type InputRepository interface {
	Create(input *entity.Input) error
	GetByID(id string) (*entity.Input, error)
	GetByCode(code string) (*entity.Input, error)
	Update(input *entity.Input) error
	UpdateCurrentStock(inputID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Input, error)
	ListLowStock() ([]*entity.Input, error)
}
