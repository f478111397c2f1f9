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

var _ repository.TemplateVariantRepository = (*TemplateVariantRepo)(nil)

const templateVariantColumns = `id, product_id, color_id, size_id, name, price, current_stock, is_active, created_at, updated_at`

// TemplateVariantRepo implementación de TemplateVariantRepository sobre
// PostgreSQL (usable con pool o tx).
type TemplateVariantRepo struct {
	q Querier
}

// NewTemplateVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateVariantRepository(q Querier) *TemplateVariantRepo {
	return &TemplateVariantRepo{q: q}
}

// GetByID obtiene una variante producible por ID.
func (r *TemplateVariantRepo) GetByID(id string) (*entity.TemplateVariant, error) {
	return r.getOne(`SELECT `+templateVariantColumns+` FROM template_variants WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *TemplateVariantRepo) GetByIDForUpdate(id string) (*entity.TemplateVariant, error) {
	return r.getOne(`SELECT `+templateVariantColumns+` FROM template_variants WHERE id = $1 FOR UPDATE`, id)
}

func (r *TemplateVariantRepo) getOne(query string, arg any) (*entity.TemplateVariant, error) {
	var v entity.TemplateVariant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.ProductID, &v.ColorID, &v.SizeID, &v.Name, &v.Price,
		&v.CurrentStock, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template variant: %w", err)
	}
	return &v, nil
}

// UpdateStock escribe el stock de la variante producible.
func (r *TemplateVariantRepo) UpdateStock(variantID string, stock decimal.Decimal) error {
	query := `UPDATE template_variants SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, variantID, stock)
	if err != nil {
		return fmt.Errorf("update template variant stock: %w", err)
	}
	return nil
}

// ListByProduct lista las variantes de una plantilla.
func (r *TemplateVariantRepo) ListByProduct(productID string) ([]*entity.TemplateVariant, error) {
	query := `SELECT ` + templateVariantColumns + ` FROM template_variants WHERE product_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list template variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.TemplateVariant
	for rows.Next() {
		var v entity.TemplateVariant
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.ColorID, &v.SizeID, &v.Name, &v.Price,
			&v.CurrentStock, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
