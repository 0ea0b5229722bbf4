// Package tax modela el documento de impuestos que se envía a AvaTax:
// cabecera, líneas ordenadas y el índice de trazabilidad línea → origen.
package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location dirección usada como origen (ShipFrom) o destino (ShipTo).
type Location struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Header cabecera del documento.
type Header struct {
	DocumentCode       string    `json:"documentCode"`
	TransactionType    string    `json:"transactionType"`
	CompanyCode        string    `json:"companyCode"`
	CustomerCode       string    `json:"customerCode"`
	CurrencyCode       string    `json:"currencyCode,omitempty"`
	TransactionDate    time.Time `json:"transactionDate"`    // hora local de la tienda
	TaxCalculationDate time.Time `json:"taxCalculationDate"` // fecha usada para las tarifas
	ShipFrom           Location  `json:"shipFrom"`
	ShipTo             Location  `json:"shipTo"`
}

// Line línea normalizada del documento.
type Line struct {
	LineCode      int             `json:"lineCode"`
	ItemCode      string          `json:"itemCode"`
	Description   string          `json:"description"`
	TaxCode       string          `json:"taxCode,omitempty"`
	NumberOfItems decimal.Decimal `json:"numberOfItems"`
	LineAmount    decimal.Decimal `json:"lineAmount"` // negativo en notas crédito
	Discounted    bool            `json:"discounted"`
	Ref1          string          `json:"ref1,omitempty"`
	Ref2          string          `json:"ref2,omitempty"`
}

// LineIndex lineCode → id del ítem de orden o SKU sintético. No se envía al WS.
type LineIndex map[int]string

// Document documento completo; se construye una vez por envío.
type Document struct {
	Header Header `json:"header"`
	Lines  []Line `json:"lines"`
}

// HasLines indica si el documento tiene al menos una línea.
func (d *Document) HasLines() bool {
	return d != nil && len(d.Lines) > 0
}

// TotalAmount suma de LineAmount de todas las líneas.
func (d *Document) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	if d == nil {
		return total
	}
	for _, l := range d.Lines {
		total = total.Add(l.LineAmount)
	}
	return total
}

// Credentials credenciales de la cuenta AvaTax de una tienda.
type Credentials struct {
	ServiceURL string
	AccountID  string
	LicenseKey string
}
