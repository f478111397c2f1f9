package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ repository.InputVariantMovementRepository = (*InputVariantMovementRepo)(nil)
var _ repository.TemplateVariantMovementRepository = (*TemplateVariantMovementRepo)(nil)

const variantMovementColumns = `id, variant_id, type, quantity, reason, reference, created_at, created_by, created_by_name`

// InputVariantMovementRepo libro de movimientos de variantes de insumo sobre
// PostgreSQL (usable con pool o tx).
type InputVariantMovementRepo struct {
	q Querier
}

// NewInputVariantMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputVariantMovementRepository(q Querier) *InputVariantMovementRepo {
	return &InputVariantMovementRepo{q: q}
}

// Create persiste un movimiento de variante de insumo.
func (r *InputVariantMovementRepo) Create(m *entity.InputVariantMovement) error {
	query := `
		INSERT INTO input_variant_movements (` + variantMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.VariantID, m.Type, m.Quantity, m.Reason, m.Reference,
		m.CreatedAt, m.CreatedBy, m.CreatedByName,
	)
	if err != nil {
		return fmt.Errorf("create input variant movement: %w", err)
	}
	return nil
}

// ListByVariant lista los últimos movimientos de una variante de insumo.
func (r *InputVariantMovementRepo) ListByVariant(variantID string, limit int) ([]*entity.InputVariantMovement, error) {
	query := `
		SELECT ` + variantMovementColumns + `
		FROM input_variant_movements WHERE variant_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, variantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list input variant movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InputVariantMovement
	for rows.Next() {
		var m entity.InputVariantMovement
		if err := rows.Scan(
			&m.ID, &m.VariantID, &m.Type, &m.Quantity, &m.Reason, &m.Reference,
			&m.CreatedAt, &m.CreatedBy, &m.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan input variant movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TemplateVariantMovementRepo libro de movimientos de variantes producibles
// sobre PostgreSQL (usable con pool o tx).
type TemplateVariantMovementRepo struct {
	q Querier
}

// NewTemplateVariantMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateVariantMovementRepository(q Querier) *TemplateVariantMovementRepo {
	return &TemplateVariantMovementRepo{q: q}
}

// Create persiste un movimiento de variante producible.
func (r *TemplateVariantMovementRepo) Create(m *entity.TemplateVariantMovement) error {
	query := `
		INSERT INTO template_variant_movements (` + variantMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.VariantID, m.Type, m.Quantity, m.Reason, m.Reference,
		m.CreatedAt, m.CreatedBy, m.CreatedByName,
	)
	if err != nil {
		return fmt.Errorf("create template variant movement: %w", err)
	}
	return nil
}

// ListByVariant lista los últimos movimientos de una variante producible.
func (r *TemplateVariantMovementRepo) ListByVariant(variantID string, limit int) ([]*entity.TemplateVariantMovement, error) {
	query := `
		SELECT ` + variantMovementColumns + `
		FROM template_variant_movements WHERE variant_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, variantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list template variant movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.TemplateVariantMovement
	for rows.Next() {
		var m entity.TemplateVariantMovement
		if err := rows.Scan(
			&m.ID, &m.VariantID, &m.Type, &m.Quantity, &m.Reason, &m.Reference,
			&m.CreatedAt, &m.CreatedBy, &m.CreatedByName,
		); err != nil {
			return nil, fmt.Errorf("scan template variant movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
