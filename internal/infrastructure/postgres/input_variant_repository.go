package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

var _ repository.InputVariantRepository = (*InputVariantRepo)(nil)

const inputVariantColumns = `id, input_id, color_id, size_id, current_stock, unit_cost, is_active, created_at, updated_at`

// InputVariantRepo implementación de InputVariantRepository sobre PostgreSQL
// (usable con pool o tx).
type InputVariantRepo struct {
	q Querier
}

// NewInputVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputVariantRepository(q Querier) *InputVariantRepo {
	return &InputVariantRepo{q: q}
}

// GetByID obtiene una variante de insumo por ID.
func (r *InputVariantRepo) GetByID(id string) (*entity.InputVariant, error) {
	return r.getOne(`SELECT `+inputVariantColumns+` FROM input_variants WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *InputVariantRepo) GetByIDForUpdate(id string) (*entity.InputVariant, error) {
	return r.getOne(`SELECT `+inputVariantColumns+` FROM input_variants WHERE id = $1 FOR UPDATE`, id)
}

func (r *InputVariantRepo) getOne(query string, arg any) (*entity.InputVariant, error) {
	var v entity.InputVariant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.InputID, &v.ColorID, &v.SizeID, &v.CurrentStock,
		&v.UnitCost, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input variant: %w", err)
	}
	return &v, nil
}

// UpdateStock escribe el stock de la variante.
func (r *InputVariantRepo) UpdateStock(variantID string, stock decimal.Decimal) error {
	query := `UPDATE input_variants SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, variantID, stock)
	if err != nil {
		return fmt.Errorf("update input variant stock: %w", err)
	}
	return nil
}

// ListByInput lista las variantes de un insumo.
func (r *InputVariantRepo) ListByInput(inputID string) ([]*entity.InputVariant, error) {
	query := `SELECT ` + inputVariantColumns + ` FROM input_variants WHERE input_id = $1 ORDER BY color_id, size_id`
	rows, err := r.q.Query(context.Background(), query, inputID)
	if err != nil {
		return nil, fmt.Errorf("list input variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.InputVariant
	for rows.Next() {
		var v entity.InputVariant
		if err := rows.Scan(
			&v.ID, &v.InputID, &v.ColorID, &v.SizeID, &v.CurrentStock,
			&v.UnitCost, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan input variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
