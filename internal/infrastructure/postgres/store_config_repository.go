package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

var _ repository.StoreConfigRepository = (*StoreConfigRepo)(nil)

// StoreConfigRepo configuración AvaTax por tienda.
type StoreConfigRepo struct {
	q Querier
}

// NewStoreConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreConfigRepository(q Querier) *StoreConfigRepo {
	return &StoreConfigRepo{q: q}
}

// GetByStoreID devuelve (nil, nil) si la tienda no tiene fila.
func (r *StoreConfigRepo) GetByStoreID(ctx context.Context, storeID string) (*entity.StoreConfig, error) {
	const query = `
		SELECT store_id, service_url, account_id, license_key, company_code,
		       shipping_sku, gw_order_sku, gw_items_sku, gw_printed_card_sku,
		       adjustment_positive_sku, adjustment_negative_sku,
		       shipping_tax_code, gift_tax_code, ref1_attribute, ref2_attribute,
		       full_stop_on_error, timezone, locale,
		       origin_line1, origin_line2, origin_city, origin_region, origin_postal_code, origin_country,
		       updated_at
		FROM avatax_store_config WHERE store_id = $1`
	var c entity.StoreConfig
	err := r.q.QueryRow(ctx, query, storeID).Scan(
		&c.StoreID, &c.ServiceURL, &c.AccountID, &c.LicenseKey, &c.CompanyCode,
		&c.ShippingSKU, &c.GwOrderSKU, &c.GwItemsSKU, &c.GwPrintedCardSKU,
		&c.AdjustmentPositiveSKU, &c.AdjustmentNegativeSKU,
		&c.ShippingTaxCode, &c.GiftTaxCode, &c.Ref1Attribute, &c.Ref2Attribute,
		&c.FullStopOnError, &c.Timezone, &c.Locale,
		&c.Origin.Line1, &c.Origin.Line2, &c.Origin.City, &c.Origin.Region, &c.Origin.PostalCode, &c.Origin.Country,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store config: %w", err)
	}
	return &c, nil
}

// Upsert inserta o reemplaza la configuración completa de la tienda.
func (r *StoreConfigRepo) Upsert(ctx context.Context, c *entity.StoreConfig) error {
	c.UpdatedAt = time.Now()
	const query = `
		INSERT INTO avatax_store_config (
		    store_id, service_url, account_id, license_key, company_code,
		    shipping_sku, gw_order_sku, gw_items_sku, gw_printed_card_sku,
		    adjustment_positive_sku, adjustment_negative_sku,
		    shipping_tax_code, gift_tax_code, ref1_attribute, ref2_attribute,
		    full_stop_on_error, timezone, locale,
		    origin_line1, origin_line2, origin_city, origin_region, origin_postal_code, origin_country,
		    updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		ON CONFLICT (store_id) DO UPDATE SET
		    service_url = EXCLUDED.service_url, account_id = EXCLUDED.account_id,
		    license_key = EXCLUDED.license_key, company_code = EXCLUDED.company_code,
		    shipping_sku = EXCLUDED.shipping_sku, gw_order_sku = EXCLUDED.gw_order_sku,
		    gw_items_sku = EXCLUDED.gw_items_sku, gw_printed_card_sku = EXCLUDED.gw_printed_card_sku,
		    adjustment_positive_sku = EXCLUDED.adjustment_positive_sku,
		    adjustment_negative_sku = EXCLUDED.adjustment_negative_sku,
		    shipping_tax_code = EXCLUDED.shipping_tax_code, gift_tax_code = EXCLUDED.gift_tax_code,
		    ref1_attribute = EXCLUDED.ref1_attribute, ref2_attribute = EXCLUDED.ref2_attribute,
		    full_stop_on_error = EXCLUDED.full_stop_on_error, timezone = EXCLUDED.timezone,
		    locale = EXCLUDED.locale, origin_line1 = EXCLUDED.origin_line1,
		    origin_line2 = EXCLUDED.origin_line2, origin_city = EXCLUDED.origin_city,
		    origin_region = EXCLUDED.origin_region, origin_postal_code = EXCLUDED.origin_postal_code,
		    origin_country = EXCLUDED.origin_country, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.StoreID, c.ServiceURL, c.AccountID, c.LicenseKey, c.CompanyCode,
		c.ShippingSKU, c.GwOrderSKU, c.GwItemsSKU, c.GwPrintedCardSKU,
		c.AdjustmentPositiveSKU, c.AdjustmentNegativeSKU,
		c.ShippingTaxCode, c.GiftTaxCode, c.Ref1Attribute, c.Ref2Attribute,
		c.FullStopOnError, c.Timezone, c.Locale,
		c.Origin.Line1, c.Origin.Line2, c.Origin.City, c.Origin.Region, c.Origin.PostalCode, c.Origin.Country,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert store config: %w", err)
	}
	return nil
}
