package repository

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
)

// AuditLogRepository log de auditoría de las llamadas a AvaTax.
type AuditLogRepository interface {
	Save(ctx context.Context, entry *entity.AuditLog) error
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.AuditLog, error)
}

// OrderHistoryRepository comentarios del historial de la orden.
type OrderHistoryRepository interface {
	Insert(ctx context.Context, h *entity.StatusHistory) error
}

// ErrorFlagStore bandera de error por tienda ("full stop on error").
type ErrorFlagStore interface {
	Raise(ctx context.Context, storeID string) error
	// Clear es idempotente; cleared=true solo si la bandera estaba levantada.
	Clear(ctx context.Context, storeID string) (cleared bool, err error)
	IsRaised(ctx context.Context, storeID string) (bool, error)
}
