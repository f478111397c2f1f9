package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento sobre lotes de insumo.
const (
	MovementTypeENTRADA    = "ENTRADA"    // recepción de mercancía (crea el lote)
	MovementTypeAJUSTE     = "AJUSTE"     // corrección de cantidad (daño, reconteo)
	MovementTypeRESERVA    = "RESERVA"    // apartado temporal para orden/producción
	MovementTypeLIBERACION = "LIBERACION" // reversa de una reserva
	MovementTypeSALIDA     = "SALIDA"     // consumo definitivo de lo reservado
)

// InputBatchMovement es un hecho inmutable del libro de movimientos de un lote.
// Se crea exactamente una vez por mutación del lote; nunca se actualiza ni borra.
type InputBatchMovement struct {
	ID            string
	InputID       string
	BatchID       string
	Type          string
	Quantity      decimal.Decimal // siempre positiva; el tipo da el signo semántico
	Reason        string
	Reference     string // id de orden, producción o conversión
	CreatedAt     time.Time
	CreatedBy     string
	CreatedByName string
}
