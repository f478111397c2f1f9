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

var _ repository.InputRepository = (*InputRepo)(nil)

const inputColumns = `id, code, name, unit_measure, unit_cost, current_stock, min_stock, max_stock, is_active, created_at, updated_at`

// InputRepo implementación de InputRepository sobre PostgreSQL (usable con pool o tx).
type InputRepo struct {
	q Querier
}

// NewInputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputRepository(q Querier) *InputRepo {
	return &InputRepo{q: q}
}

// Create persiste un insumo nuevo.
func (r *InputRepo) Create(input *entity.Input) error {
	query := `
		INSERT INTO inputs (` + inputColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		input.ID, input.Code, input.Name, input.UnitMeasure, input.UnitCost,
		input.CurrentStock, input.MinStock, input.MaxStock, input.IsActive,
		input.CreatedAt, input.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create input: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InputRepo) GetByID(id string) (*entity.Input, error) {
	return r.getOne(`SELECT `+inputColumns+` FROM inputs WHERE id = $1`, id)
}

// GetByCode obtiene un insumo por su código único.
func (r *InputRepo) GetByCode(code string) (*entity.Input, error) {
	return r.getOne(`SELECT `+inputColumns+` FROM inputs WHERE code = $1`, code)
}

func (r *InputRepo) getOne(query string, arg any) (*entity.Input, error) {
	var in entity.Input
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&in.ID, &in.Code, &in.Name, &in.UnitMeasure, &in.UnitCost,
		&in.CurrentStock, &in.MinStock, &in.MaxStock, &in.IsActive,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input: %w", err)
	}
	return &in, nil
}

// Update actualiza metadatos del insumo. No toca current_stock.
func (r *InputRepo) Update(input *entity.Input) error {
	query := `
		UPDATE inputs
		SET name = $2, unit_measure = $3, unit_cost = $4, min_stock = $5,
		    max_stock = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		input.ID, input.Name, input.UnitMeasure, input.UnitCost,
		input.MinStock, input.MaxStock, input.IsActive, input.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update input: %w", err)
	}
	return nil
}

// UpdateCurrentStock escribe la proyección current_stock (solo el agregador).
func (r *InputRepo) UpdateCurrentStock(inputID string, stock decimal.Decimal) error {
	query := `UPDATE inputs SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, inputID, stock)
	if err != nil {
		return fmt.Errorf("update current stock: %w", err)
	}
	return nil
}

// List lista insumos con paginación.
func (r *InputRepo) List(limit, offset int) ([]*entity.Input, error) {
	query := `SELECT ` + inputColumns + ` FROM inputs ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()
	return scanInputs(rows)
}

// ListLowStock insumos activos con current_stock <= min_stock.
func (r *InputRepo) ListLowStock() ([]*entity.Input, error) {
	query := `
		SELECT ` + inputColumns + `
		FROM inputs
		WHERE is_active AND current_stock <= min_stock
		ORDER BY current_stock - min_stock`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanInputs(rows)
}

func scanInputs(rows pgx.Rows) ([]*entity.Input, error) {
	var list []*entity.Input
	for rows.Next() {
		var in entity.Input
		if err := rows.Scan(
			&in.ID, &in.Code, &in.Name, &in.UnitMeasure, &in.UnitCost,
			&in.CurrentStock, &in.MinStock, &in.MaxStock, &in.IsActive,
			&in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		list = append(list, &in)
	}
	return list, rows.Err()
}
