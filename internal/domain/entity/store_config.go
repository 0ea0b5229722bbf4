package entity

import "time"

// StoreConfig configuración AvaTax de una tienda.
type StoreConfig struct {
	StoreID     string
	ServiceURL  string
	AccountID   string
	LicenseKey  string // nunca se registra en el log de auditoría
	CompanyCode string

	ShippingSKU           string
	GwOrderSKU            string
	GwItemsSKU            string
	GwPrintedCardSKU      string
	AdjustmentPositiveSKU string
	AdjustmentNegativeSKU string

	ShippingTaxCode string
	GiftTaxCode     string
	Ref1Attribute   string
	Ref2Attribute   string

	FullStopOnError bool
	Timezone        string // IANA, ej. "America/Bogota"
	Locale          string // ej. "en_US", "es_CO"
	Origin          Address
	UpdatedAt       time.Time
}

// Location zona horaria de la tienda; UTC si no está configurada o es inválida.
func (c *StoreConfig) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Snapshot configuración visible para el log de auditoría (sin license key).
func (c *StoreConfig) Snapshot() map[string]any {
	return map[string]any{
		"store_id":                c.StoreID,
		"service_url":             c.ServiceURL,
		"account_id":              c.AccountID,
		"company_code":            c.CompanyCode,
		"shipping_sku":            c.ShippingSKU,
		"gw_order_sku":            c.GwOrderSKU,
		"gw_items_sku":            c.GwItemsSKU,
		"gw_printed_card_sku":     c.GwPrintedCardSKU,
		"adjustment_positive_sku": c.AdjustmentPositiveSKU,
		"adjustment_negative_sku": c.AdjustmentNegativeSKU,
		"shipping_tax_code":       c.ShippingTaxCode,
		"gift_tax_code":           c.GiftTaxCode,
		"ref1_attribute":          c.Ref1Attribute,
		"ref2_attribute":          c.Ref2Attribute,
		"full_stop_on_error":      c.FullStopOnError,
		"timezone":                c.Timezone,
		"locale":                  c.Locale,
	}
}
