package avatax

import (
	"context"
	"fmt"

	"github.com/jhoicas/avatax-connector/internal/domain"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

// Defaults credenciales globales usadas cuando la tienda no define las propias.
type Defaults struct {
	ServiceURL  string
	AccountID   string
	LicenseKey  string
	CompanyCode string
	Timezone    string
	Locale      string
}

// ConfigResolver obtiene la configuración efectiva de una tienda.
type ConfigResolver struct {
	repo     repository.StoreConfigRepository
	defaults Defaults
}

// NewConfigResolver construye el resolvedor.
func NewConfigResolver(repo repository.StoreConfigRepository, defaults Defaults) *ConfigResolver {
	return &ConfigResolver{repo: repo, defaults: defaults}
}

// Resolve mezcla la fila de la tienda con los valores globales. Devuelve
// domain.ErrStoreNotConfigured si faltan URL o credenciales.
func (r *ConfigResolver) Resolve(ctx context.Context, storeID string) (*entity.StoreConfig, error) {
	cfg, err := r.repo.GetByStoreID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("configuración de la tienda %s: %w", storeID, err)
	}
	if cfg == nil {
		cfg = &entity.StoreConfig{StoreID: storeID}
	}
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&cfg.ServiceURL, r.defaults.ServiceURL)
	fill(&cfg.CompanyCode, r.defaults.CompanyCode)
	fill(&cfg.Timezone, r.defaults.Timezone)
	fill(&cfg.Locale, r.defaults.Locale)
	if cfg.AccountID == "" && cfg.LicenseKey == "" {
		cfg.AccountID = r.defaults.AccountID
		cfg.LicenseKey = r.defaults.LicenseKey
	}

	if cfg.ServiceURL == "" || cfg.AccountID == "" || cfg.LicenseKey == "" {
		return nil, fmt.Errorf("tienda %s: %w", storeID, domain.ErrStoreNotConfigured)
	}
	return cfg, nil
}
