package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de venta.
const (
	DocumentTypeInvoice    = "invoice"
	DocumentTypeCreditMemo = "creditmemo"
)

// SalesDocument cabecera común de factura y nota crédito (montos en moneda base).
type SalesDocument struct {
	ID                     string
	IncrementID            string // código del documento ante AvaTax
	OrderID                string
	StoreID                string
	BaseShippingAmount     decimal.Decimal
	GwBasePrice            decimal.Decimal // envoltura de la orden
	GwItemsBasePrice       decimal.Decimal // envoltura por ítems
	GwPrintedCardBasePrice decimal.Decimal // tarjeta impresa
	BaseTaxAmount          decimal.Decimal // impuesto recaudado localmente
	Items                  []*DocumentItem
	CreatedAt              time.Time
}

// Invoice factura de venta.
type Invoice struct {
	SalesDocument
}

// CreditMemo nota crédito (reembolso). Los ajustes solo existen aquí.
type CreditMemo struct {
	SalesDocument
	BaseAdjustmentPositive decimal.Decimal // reembolso adicional al cliente
	BaseAdjustmentNegative decimal.Decimal // cargo retenido al cliente
}

// DocumentItem ítem de factura o nota crédito.
type DocumentItem struct {
	ID                 string
	DocumentID         string
	OrderItemID        string
	ProductID          string
	SKU                string
	Name               string
	Qty                decimal.Decimal
	BaseRowTotal       decimal.Decimal
	BaseDiscountAmount decimal.Decimal
	// ChildrenCalculated ítem padre (bundle) cuyo impuesto se calcula en los hijos.
	ChildrenCalculated bool
}
