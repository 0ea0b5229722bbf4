package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
)

// Encodings aceptados por --encoding.
const (
	encodingAuto   = "auto"
	encodingUTF8   = "utf-8"
	encodingLatin1 = "iso-8859-1"
)

// decodeInput devuelve el contenido en UTF-8. En modo auto, un archivo que no es UTF-8
// válido se interpreta como ISO-8859-1 (exportaciones típicas del panel de la tienda).
func decodeInput(raw []byte, encoding string) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // BOM
	switch strings.ToLower(encoding) {
	case encodingUTF8:
		return bytes.NewReader(raw), nil
	case encodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case encodingAuto, "":
		if utf8.Valid(raw) {
			return bytes.NewReader(raw), nil
		}
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding no soportado: %s", encoding)
	}
}

// parseStoreConfigs lee el CSV con encabezado. Solo store_id es obligatorio;
// las columnas desconocidas se ignoran.
func parseStoreConfigs(r io.Reader) ([]*entity.StoreConfig, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["store_id"]; !ok {
		return nil, fmt.Errorf("falta la columna store_id")
	}

	var out []*entity.StoreConfig
	seen := map[string]int{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		storeID := get("store_id")
		if storeID == "" {
			continue
		}
		if prev, dup := seen[storeID]; dup {
			return nil, fmt.Errorf("línea %d: store_id %s repetido (línea %d)", line, storeID, prev)
		}
		seen[storeID] = line

		fullStop, err := parseBool(get("full_stop_on_error"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: full_stop_on_error: %w", line, err)
		}
		out = append(out, &entity.StoreConfig{
			StoreID:               storeID,
			ServiceURL:            get("service_url"),
			AccountID:             get("account_id"),
			LicenseKey:            get("license_key"),
			CompanyCode:           get("company_code"),
			ShippingSKU:           get("shipping_sku"),
			GwOrderSKU:            get("gw_order_sku"),
			GwItemsSKU:            get("gw_items_sku"),
			GwPrintedCardSKU:      get("gw_printed_card_sku"),
			AdjustmentPositiveSKU: get("adjustment_positive_sku"),
			AdjustmentNegativeSKU: get("adjustment_negative_sku"),
			ShippingTaxCode:       get("shipping_tax_code"),
			GiftTaxCode:           get("gift_tax_code"),
			Ref1Attribute:         get("ref1_attribute"),
			Ref2Attribute:         get("ref2_attribute"),
			FullStopOnError:       fullStop,
			Timezone:              get("timezone"),
			Locale:                get("locale"),
			Origin: entity.Address{
				Line1:      get("origin_line1"),
				Line2:      get("origin_line2"),
				City:       get("origin_city"),
				Region:     get("origin_region"),
				PostalCode: get("origin_postal_code"),
				Country:    get("origin_country"),
			},
		})
	}
	return out, nil
}

// parseBool acepta además las variantes del panel ("Yes"/"No", "sí").
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "no", "n":
		return false, nil
	case "yes", "y", "sí", "si":
		return true, nil
	}
	return strconv.ParseBool(s)
}
