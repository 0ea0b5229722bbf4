package repository

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos (clase de impuesto y atributos).
type ProductRepository interface {
	// GetByIDs devuelve los productos encontrados indexados por ID; los ausentes se omiten.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
}
