package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ repository.InputBatchMovementRepository = (*InputBatchMovementRepo)(nil)

const batchMovementColumns = `id, input_id, batch_id, type, quantity, reason, reference, created_at, created_by, created_by_name`

// InputBatchMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lista: los movimientos son inmutables.
type InputBatchMovementRepo struct {
	q Querier
}

// NewInputBatchMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputBatchMovementRepository(q Querier) *InputBatchMovementRepo {
	return &InputBatchMovementRepo{q: q}
}

// Create persiste un movimiento del libro de lotes.
func (r *InputBatchMovementRepo) Create(m *entity.InputBatchMovement) error {
	query := `
		INSERT INTO input_batch_movements (` + batchMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.InputID, m.BatchID, m.Type, m.Quantity,
		m.Reason, m.Reference, m.CreatedAt, m.CreatedBy, m.CreatedByName,
	)
	if err != nil {
		return fmt.Errorf("create batch movement: %w", err)
	}
	return nil
}

// ListByInput lista movimientos de todos los lotes de un insumo en un rango de fechas.
func (r *InputBatchMovementRepo) ListByInput(inputID string, from, to *time.Time, limit, offset int) ([]*entity.InputBatchMovement, error) {
	query := `SELECT ` + batchMovementColumns + ` FROM input_batch_movements WHERE input_id = $1`
	args := []any{inputID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by input: %w", err)
	}
	defer rows.Close()
	return scanBatchMovements(rows)
}

// ListByBatch lista los últimos movimientos de un lote.
func (r *InputBatchMovementRepo) ListByBatch(batchID string, limit int) ([]*entity.InputBatchMovement, error) {
	query := `
		SELECT ` + batchMovementColumns + `
		FROM input_batch_movements WHERE batch_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, batchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements by batch: %w", err)
	}
	defer rows.Close()
	return scanBatchMovements(rows)
}

func scanBatchMovements(rows pgx.Rows) ([]*entity.InputBatchMovement, error) {
	var list []*entity.InputBatchMovement
	for rows.Next() {
		var m entity.InputBatchMovement
		if err := rows.Scan(
			&m.ID, &m.InputID, &m.BatchID, &m.Type, &m.Quantity,
			&m.Reason, &m.Reference, &m.CreatedAt, &m.CreatedBy, &m.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan batch movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
