package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ repository.InputBatchRepository = (*InputBatchRepo)(nil)

const batchColumns = `id, input_id, batch_number, initial_quantity, current_quantity, reserved_quantity, unit_cost, purchase_date, expiry_date, is_active, created_at, updated_at`

// InputBatchRepo implementación de InputBatchRepository sobre PostgreSQL
// (usable con pool o tx).
type InputBatchRepo struct {
	q Querier
}

// NewInputBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputBatchRepository(q Querier) *InputBatchRepo {
	return &InputBatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *InputBatchRepo) Create(batch *entity.InputBatch) error {
	query := `
		INSERT INTO input_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.InputID, batch.BatchNumber, batch.InitialQuantity,
		batch.CurrentQuantity, batch.ReservedQuantity, batch.UnitCost,
		batch.PurchaseDate, batch.ExpiryDate, batch.IsActive,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *InputBatchRepo) GetByID(id string) (*entity.InputBatch, error) {
	return r.getOne(`SELECT `+batchColumns+` FROM input_batches WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *InputBatchRepo) GetByIDForUpdate(id string) (*entity.InputBatch, error) {
	return r.getOne(`SELECT `+batchColumns+` FROM input_batches WHERE id = $1 FOR UPDATE`, id)
}

// GetByInputAndNumber obtiene un lote por insumo y número de lote.
func (r *InputBatchRepo) GetByInputAndNumber(inputID, batchNumber string) (*entity.InputBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM input_batches WHERE input_id = $1 AND batch_number = $2`
	var b entity.InputBatch
	err := r.q.QueryRow(context.Background(), query, inputID, batchNumber).Scan(
		&b.ID, &b.InputID, &b.BatchNumber, &b.InitialQuantity,
		&b.CurrentQuantity, &b.ReservedQuantity, &b.UnitCost,
		&b.PurchaseDate, &b.ExpiryDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by number: %w", err)
	}
	return &b, nil
}

func (r *InputBatchRepo) getOne(query string, arg any) (*entity.InputBatch, error) {
	var b entity.InputBatch
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.InputID, &b.BatchNumber, &b.InitialQuantity,
		&b.CurrentQuantity, &b.ReservedQuantity, &b.UnitCost,
		&b.PurchaseDate, &b.ExpiryDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Update persiste cantidades y metadatos del lote. initial_quantity es
// inmutable desde la entrada y no se actualiza.
func (r *InputBatchRepo) Update(batch *entity.InputBatch) error {
	query := `
		UPDATE input_batches
		SET batch_number = $2, current_quantity = $3, reserved_quantity = $4,
		    unit_cost = $5, purchase_date = $6, expiry_date = $7,
		    is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.BatchNumber, batch.CurrentQuantity, batch.ReservedQuantity,
		batch.UnitCost, batch.PurchaseDate, batch.ExpiryDate,
		batch.IsActive, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// ListByInput lista lotes de un insumo, opcionalmente solo los activos.
func (r *InputBatchRepo) ListByInput(inputID string, activeOnly bool) ([]*entity.InputBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM input_batches WHERE input_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, inputID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.InputBatch
	for rows.Next() {
		var b entity.InputBatch
		if err := rows.Scan(
			&b.ID, &b.InputID, &b.BatchNumber, &b.InitialQuantity,
			&b.CurrentQuantity, &b.ReservedQuantity, &b.UnitCost,
			&b.PurchaseDate, &b.ExpiryDate, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// SumActiveQuantity suma current_quantity de los lotes activos del insumo.
func (r *InputBatchRepo) SumActiveQuantity(inputID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(current_quantity), 0)
		FROM input_batches WHERE input_id = $1 AND is_active`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, inputID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum active quantity: %w", err)
	}
	return total, nil
}
