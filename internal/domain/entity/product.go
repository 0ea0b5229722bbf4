package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

// Product datos del catálogo que necesita el cálculo de impuestos.
type Product struct {
	ID         string
	StoreID    string
	SKU        string
	Name       string
	TaxClassID string
	TaxCode    string // código AvaTax de la clase de impuesto; vacío si no se resuelve
	Attributes json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AttributeValue valor de un atributo como texto. Vacío si no existe o es nulo.
func (p *Product) AttributeValue(code string) string {
	if p == nil || code == "" || len(p.Attributes) == 0 {
		return ""
	}
	// json.Number conserva el literal: 12345678905 no sale como 1.2345678905e+10
	dec := json.NewDecoder(bytes.NewReader(p.Attributes))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return ""
	}
	v, ok := attrs[code]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}
