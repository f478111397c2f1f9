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

var _ repository.ConversionRepository = (*ConversionRepo)(nil)

const conversionColumns = `id, conversion_number, conversion_type, template_id, status, conversion_date, notes, total_input_cost, total_output_cost, created_by, created_by_name, approved_by, approved_by_name, approved_at, created_at, updated_at`

const conversionInputItemColumns = `id, conversion_id, input_variant_id, input_code, input_name, unit_cost, quantity, total_cost, created_at`

const conversionOutputItemColumns = `id, conversion_id, variant_id, variant_name, unit_price, quantity, total_value, created_at`

// ConversionRepo implementación de ConversionRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas viven en tablas hijas con FK a la
// cabecera y se borran en cascada con Delete.
type ConversionRepo struct {
	q Querier
}

// NewConversionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversionRepository(q Querier) *ConversionRepo {
	return &ConversionRepo{q: q}
}

// Create persiste una cabecera de conversión nueva.
func (r *ConversionRepo) Create(c *entity.Conversion) error {
	query := `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ConversionNumber, c.ConversionType, nullIfEmpty(c.TemplateID),
		c.Status, c.ConversionDate, c.Notes, c.TotalInputCost, c.TotalOutputCost,
		c.CreatedBy, c.CreatedByName, nullIfEmpty(c.ApprovedBy), c.ApprovedByName,
		c.ApprovedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create conversion: %w", err)
	}
	return nil
}

// GetByID obtiene una conversión por ID.
func (r *ConversionRepo) GetByID(id string) (*entity.Conversion, error) {
	return r.getOne(`SELECT `+conversionColumns+` FROM conversions WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
func (r *ConversionRepo) GetByIDForUpdate(id string) (*entity.Conversion, error) {
	return r.getOne(`SELECT `+conversionColumns+` FROM conversions WHERE id = $1 FOR UPDATE`, id)
}

func (r *ConversionRepo) getOne(query string, arg any) (*entity.Conversion, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	c, err := scanConversion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	return c, nil
}

func scanConversion(row pgx.Row) (*entity.Conversion, error) {
	var c entity.Conversion
	var templateID, approvedBy *string
	err := row.Scan(
		&c.ID, &c.ConversionNumber, &c.ConversionType, &templateID,
		&c.Status, &c.ConversionDate, &c.Notes, &c.TotalInputCost, &c.TotalOutputCost,
		&c.CreatedBy, &c.CreatedByName, &approvedBy, &c.ApprovedByName,
		&c.ApprovedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if templateID != nil {
		c.TemplateID = *templateID
	}
	if approvedBy != nil {
		c.ApprovedBy = *approvedBy
	}
	return &c, nil
}

// Update persiste estado, totales y campos de aprobación de la cabecera.
func (r *ConversionRepo) Update(c *entity.Conversion) error {
	query := `
		UPDATE conversions
		SET status = $2, conversion_date = $3, notes = $4,
		    total_input_cost = $5, total_output_cost = $6,
		    approved_by = $7, approved_by_name = $8, approved_at = $9,
		    updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Status, c.ConversionDate, c.Notes,
		c.TotalInputCost, c.TotalOutputCost,
		nullIfEmpty(c.ApprovedBy), c.ApprovedByName, c.ApprovedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update conversion: %w", err)
	}
	return nil
}

// Delete elimina la cabecera y sus líneas (ON DELETE CASCADE en las hijas).
func (r *ConversionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM conversions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete conversion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// conversionNumberLock espacio del lock consultivo que serializa la
// asignación del consecutivo (pg_advisory_xact_lock, clave por año).
const conversionNumberLock = 7451

// NextNumber asigna el siguiente consecutivo CNV-YYYY-NNNN del año a partir
// del máximo ya emitido. Debe llamarse dentro de una transacción: toma un
// lock consultivo de transacción por año, así dos asignaciones concurrentes
// nunca leen el mismo máximo.
func (r *ConversionRepo) NextNumber(year int) (string, error) {
	if _, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock($1, $2)`, conversionNumberLock, year); err != nil {
		return "", fmt.Errorf("lock conversion number: %w", err)
	}
	prefix := fmt.Sprintf("CNV-%d-", year)
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(conversion_number FROM $2) AS INTEGER)), 0)
		FROM conversions WHERE conversion_number LIKE $1`
	var last int
	err := r.q.QueryRow(context.Background(), query, prefix+"%", len(prefix)+1).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("next conversion number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}

// List lista conversiones por estado y rango de fechas, más recientes primero.
func (r *ConversionRepo) List(filter repository.ConversionFilter) ([]*entity.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE 1=1`
	var args []any
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND conversion_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND conversion_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY conversion_date DESC, conversion_number DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Stats calcula agregados del flujo: conteo por estado y totales aprobados.
func (r *ConversionRepo) Stats() (*repository.ConversionStats, error) {
	stats := &repository.ConversionStats{
		CountByStatus:      make(map[string]int),
		TotalApprovedCost:  decimal.Zero,
		TotalApprovedValue: decimal.Zero,
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT status, COUNT(*) FROM conversions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("conversion stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan conversion stats: %w", err)
		}
		stats.CountByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(SUM(total_input_cost), 0), COALESCE(SUM(total_output_cost), 0), MAX(approved_at)
		FROM conversions WHERE status = $1`
	err = r.q.QueryRow(context.Background(), query, entity.ConversionStatusApproved).Scan(
		&stats.TotalApprovedCost, &stats.TotalApprovedValue, &stats.LastApprovedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("conversion approved totals: %w", err)
	}
	return stats, nil
}

// AddInputItem persiste una línea de consumo de insumo.
func (r *ConversionRepo) AddInputItem(item *entity.ConversionInputItem) error {
	query := `
		INSERT INTO conversion_input_items (` + conversionInputItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ConversionID, item.InputVariantID, item.InputCode,
		item.InputName, item.UnitCost, item.Quantity, item.TotalCost, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add conversion input item: %w", err)
	}
	return nil
}

// UpdateInputItem actualiza cantidad y total de una línea de consumo.
func (r *ConversionRepo) UpdateInputItem(item *entity.ConversionInputItem) error {
	query := `UPDATE conversion_input_items SET quantity = $2, total_cost = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Quantity, item.TotalCost)
	if err != nil {
		return fmt.Errorf("update conversion input item: %w", err)
	}
	return nil
}

// RemoveInputItem elimina una línea de consumo.
func (r *ConversionRepo) RemoveInputItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM conversion_input_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("remove conversion input item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetInputItem obtiene una línea de consumo por ID.
func (r *ConversionRepo) GetInputItem(itemID string) (*entity.ConversionInputItem, error) {
	query := `SELECT ` + conversionInputItemColumns + ` FROM conversion_input_items WHERE id = $1`
	var it entity.ConversionInputItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.ConversionID, &it.InputVariantID, &it.InputCode,
		&it.InputName, &it.UnitCost, &it.Quantity, &it.TotalCost, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion input item: %w", err)
	}
	return &it, nil
}

// ListInputItems lista las líneas de consumo de una conversión.
func (r *ConversionRepo) ListInputItems(conversionID string) ([]*entity.ConversionInputItem, error) {
	query := `SELECT ` + conversionInputItemColumns + ` FROM conversion_input_items WHERE conversion_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, conversionID)
	if err != nil {
		return nil, fmt.Errorf("list conversion input items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConversionInputItem
	for rows.Next() {
		var it entity.ConversionInputItem
		if err := rows.Scan(
			&it.ID, &it.ConversionID, &it.InputVariantID, &it.InputCode,
			&it.InputName, &it.UnitCost, &it.Quantity, &it.TotalCost, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversion input item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// AddOutputItem persiste una línea de producción.
func (r *ConversionRepo) AddOutputItem(item *entity.ConversionOutputItem) error {
	query := `
		INSERT INTO conversion_output_items (` + conversionOutputItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ConversionID, item.VariantID, item.VariantName,
		item.UnitPrice, item.Quantity, item.TotalValue, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add conversion output item: %w", err)
	}
	return nil
}

// UpdateOutputItem actualiza cantidad y valor de una línea de producción.
func (r *ConversionRepo) UpdateOutputItem(item *entity.ConversionOutputItem) error {
	query := `UPDATE conversion_output_items SET quantity = $2, total_value = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Quantity, item.TotalValue)
	if err != nil {
		return fmt.Errorf("update conversion output item: %w", err)
	}
	return nil
}

// RemoveOutputItem elimina una línea de producción.
func (r *ConversionRepo) RemoveOutputItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM conversion_output_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("remove conversion output item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetOutputItem obtiene una línea de producción por ID.
func (r *ConversionRepo) GetOutputItem(itemID string) (*entity.ConversionOutputItem, error) {
	query := `SELECT ` + conversionOutputItemColumns + ` FROM conversion_output_items WHERE id = $1`
	var it entity.ConversionOutputItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.ConversionID, &it.VariantID, &it.VariantName,
		&it.UnitPrice, &it.Quantity, &it.TotalValue, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion output item: %w", err)
	}
	return &it, nil
}

// ListOutputItems lista las líneas de producción de una conversión.
func (r *ConversionRepo) ListOutputItems(conversionID string) ([]*entity.ConversionOutputItem, error) {
	query := `SELECT ` + conversionOutputItemColumns + ` FROM conversion_output_items WHERE conversion_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, conversionID)
	if err != nil {
		return nil, fmt.Errorf("list conversion output items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConversionOutputItem
	for rows.Next() {
		var it entity.ConversionOutputItem
		if err := rows.Scan(
			&it.ID, &it.ConversionID, &it.VariantID, &it.VariantName,
			&it.UnitPrice, &it.Quantity, &it.TotalValue, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan conversion output item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
