package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos con el código AvaTax de su clase de impuesto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByIDs carga en una sola consulta los productos pedidos.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const query = `
		SELECT p.id, p.store_id, p.sku, p.name, COALESCE(p.tax_class_id, ''), COALESCE(tc.avatax_code, ''),
		       p.attributes, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN tax_classes tc ON tc.id = p.tax_class_id
		WHERE p.id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.TaxClassID, &p.TaxCode,
			&p.Attributes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = &p
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza por (store_id, sku).
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	attrs := p.Attributes
	if len(attrs) == 0 {
		attrs = []byte(`{}`)
	}
	const query = `
		INSERT INTO products (id, store_id, sku, name, tax_class_id, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (store_id, sku) DO UPDATE
		SET name = EXCLUDED.name, tax_class_id = EXCLUDED.tax_class_id,
		    attributes = EXCLUDED.attributes, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, p.ID, p.StoreID, p.SKU, p.Name, nullIfEmpty(p.TaxClassID), attrs, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}
