package repository

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
)

// InvoiceRepository lectura de facturas con sus ítems. GetByID devuelve (nil, nil) si no existe.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
}

// CreditMemoRepository lectura de notas crédito con sus ítems. GetByID devuelve (nil, nil) si no existe.
type CreditMemoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CreditMemo, error)
}

// OrderRepository lectura de órdenes con sus direcciones.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
