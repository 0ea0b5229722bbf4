// Package redis bandera de error por tienda sobre Redis (backend alternativo a PostgreSQL).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	"github.com/jhoicas/avatax-connector/pkg/config"
	goredis "github.com/redis/go-redis/v9"
)

var _ repository.ErrorFlagStore = (*ErrorFlagStore)(nil)

const keyPrefix = "avatax:error_flag:"

// ErrorFlagStore una clave por tienda; el valor es la fecha en que se levantó.
type ErrorFlagStore struct {
	client *goredis.Client
	now    func() time.Time
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewErrorFlagStore construye el adaptador sobre un cliente ya abierto.
func NewErrorFlagStore(client *goredis.Client) *ErrorFlagStore {
	return &ErrorFlagStore{client: client, now: time.Now}
}

func flagKey(storeID string) string {
	return keyPrefix + storeID
}

// Raise levanta la bandera; SETNX conserva la fecha original si ya existía.
func (s *ErrorFlagStore) Raise(ctx context.Context, storeID string) error {
	if s == nil || s.client == nil {
		return errors.New("redis client not configured")
	}
	if err := s.client.SetNX(ctx, flagKey(storeID), s.now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("raise error flag: %w", err)
	}
	return nil
}

// Clear borra la clave. cleared=true solo si existía.
func (s *ErrorFlagStore) Clear(ctx context.Context, storeID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("redis client not configured")
	}
	n, err := s.client.Del(ctx, flagKey(storeID)).Result()
	if err != nil {
		return false, fmt.Errorf("clear error flag: %w", err)
	}
	return n > 0, nil
}

// IsRaised indica si la clave existe.
func (s *ErrorFlagStore) IsRaised(ctx context.Context, storeID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("redis client not configured")
	}
	n, err := s.client.Exists(ctx, flagKey(storeID)).Result()
	if err != nil {
		return false, fmt.Errorf("get error flag: %w", err)
	}
	return n > 0, nil
}
