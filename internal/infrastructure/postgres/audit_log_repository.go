package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

var (
	_ repository.AuditLogRepository = (*AuditLogRepo)(nil)
	_ repository.ErrorFlagStore     = (*ErrorFlagRepo)(nil)
)

// AuditLogRepo log de auditoría de llamadas a AvaTax.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Save persiste la entrada.
func (r *AuditLogRepo) Save(ctx context.Context, e *entity.AuditLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO avatax_audit_log (id, store_id, category, level, document_code, request, result, config_snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.StoreID, e.Category, e.Level, nullIfEmpty(e.DocumentCode),
		nullJSON(e.Request), nullJSON(e.Result), nullJSON(e.ConfigSnapshot), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByStore últimas entradas de la tienda, más recientes primero.
func (r *AuditLogRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.AuditLog, error) {
	const query = `
		SELECT id, store_id, category, level, COALESCE(document_code, ''), request, result, config_snapshot, created_at
		FROM avatax_audit_log WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Category, &e.Level, &e.DocumentCode,
			&e.Request, &e.Result, &e.ConfigSnapshot, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func nullJSON(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

// ErrorFlagRepo bandera de error persistida en PostgreSQL (backend por defecto).
type ErrorFlagRepo struct {
	q Querier
}

// NewErrorFlagRepository construye el adaptador.
func NewErrorFlagRepository(q Querier) *ErrorFlagRepo {
	return &ErrorFlagRepo{q: q}
}

// Raise levanta la bandera; si ya estaba levantada conserva la fecha original.
func (r *ErrorFlagRepo) Raise(ctx context.Context, storeID string) error {
	_, err := r.q.Exec(ctx, `INSERT INTO avatax_error_flags (store_id) VALUES ($1) ON CONFLICT (store_id) DO NOTHING`, storeID)
	if err != nil {
		return fmt.Errorf("raise error flag: %w", err)
	}
	return nil
}

// Clear borra la bandera. cleared=true solo si existía.
func (r *ErrorFlagRepo) Clear(ctx context.Context, storeID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM avatax_error_flags WHERE store_id = $1`, storeID)
	if err != nil {
		return false, fmt.Errorf("clear error flag: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsRaised indica si la bandera está levantada.
func (r *ErrorFlagRepo) IsRaised(ctx context.Context, storeID string) (bool, error) {
	var raised bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM avatax_error_flags WHERE store_id = $1)`, storeID).Scan(&raised)
	if err != nil {
		return false, fmt.Errorf("get error flag: %w", err)
	}
	return raised, nil
}
