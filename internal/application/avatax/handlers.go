package avatax

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	pkgavatax "github.com/jhoicas/avatax-connector/pkg/avatax"
	"github.com/jhoicas/avatax-connector/pkg/i18n"
)

// transactionHandler lo que distingue una factura de una nota crédito. El Assembler,
// el Sender y el Reconciler trabajan solo contra este contrato.
type transactionHandler interface {
	kind() string
	credit() bool
	transactionType() string
	document() *entity.SalesDocument
	// calculationDate fecha usada por AvaTax para elegir tarifas.
	calculationDate(order *entity.Order, now time.Time) time.Time
	// addTrailingLines líneas posteriores a los ítems (ajustes de la nota crédito).
	addTrailingLines(b *tax.LineBuilder, cfg *entity.StoreConfig)
	// expectedTax impuesto que AvaTax debería devolver si todo cuadra.
	expectedTax() decimal.Decimal
	historyMessage() string
}

// ── Factura ──────────────────────────────────────────────────────────────────

type invoiceHandler struct {
	inv *entity.Invoice
}

func newInvoiceHandler(inv *entity.Invoice) transactionHandler { return invoiceHandler{inv: inv} }

func (h invoiceHandler) kind() string                    { return entity.DocumentTypeInvoice }
func (h invoiceHandler) credit() bool                    { return false }
func (h invoiceHandler) transactionType() string         { return pkgavatax.TransactionSalesInvoice }
func (h invoiceHandler) document() *entity.SalesDocument { return &h.inv.SalesDocument }
func (h invoiceHandler) expectedTax() decimal.Decimal    { return h.inv.BaseTaxAmount }
func (h invoiceHandler) historyMessage() string          { return i18n.MsgInvoiceSaved }

func (h invoiceHandler) addTrailingLines(*tax.LineBuilder, *entity.StoreConfig) {}

func (h invoiceHandler) calculationDate(_ *entity.Order, now time.Time) time.Time { return now }

// ── Nota crédito ─────────────────────────────────────────────────────────────

type creditMemoHandler struct {
	memo *entity.CreditMemo
}

func newCreditMemoHandler(memo *entity.CreditMemo) transactionHandler {
	return creditMemoHandler{memo: memo}
}

func (h creditMemoHandler) kind() string                    { return entity.DocumentTypeCreditMemo }
func (h creditMemoHandler) credit() bool                    { return true }
func (h creditMemoHandler) transactionType() string         { return pkgavatax.TransactionReturnInvoice }
func (h creditMemoHandler) document() *entity.SalesDocument { return &h.memo.SalesDocument }
func (h creditMemoHandler) historyMessage() string          { return i18n.MsgCreditMemoSaved }

// expectedTax AvaTax devuelve el impuesto de un ReturnInvoice con signo negativo.
func (h creditMemoHandler) expectedTax() decimal.Decimal { return h.memo.BaseTaxAmount.Neg() }

// calculationDate el reembolso se calcula con las tarifas vigentes al crear la orden.
func (h creditMemoHandler) calculationDate(order *entity.Order, now time.Time) time.Time {
	if order == nil || order.CreatedAt.IsZero() {
		return now
	}
	return order.CreatedAt
}

func (h creditMemoHandler) addTrailingLines(b *tax.LineBuilder, cfg *entity.StoreConfig) {
	b.AddAdjustmentRefund(h.memo.BaseAdjustmentPositive, cfg.AdjustmentPositiveSKU)
	b.AddAdjustmentFee(h.memo.BaseAdjustmentNegative, cfg.AdjustmentNegativeSKU)
}
