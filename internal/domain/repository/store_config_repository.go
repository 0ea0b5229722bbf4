package repository

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
)

// StoreConfigRepository configuración AvaTax por tienda.
type StoreConfigRepository interface {
	// GetByStoreID devuelve (nil, nil) si la tienda no tiene configuración.
	GetByStoreID(ctx context.Context, storeID string) (*entity.StoreConfig, error)
	Upsert(ctx context.Context, cfg *entity.StoreConfig) error
}
