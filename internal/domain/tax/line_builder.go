package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/pkg/avatax"
)

// Charge cargo auxiliar de cantidad 1: envío, envolturas de regalo o ajustes.
type Charge struct {
	Amount      decimal.Decimal
	SKU         string // SKU configurado en la tienda; vacío usa DefaultSKU
	DefaultSKU  string
	Description string
	TaxCode     string
	// Fee conserva el signo aun en documentos de crédito (cargo a favor del comercio).
	Fee bool
}

// Item ítem de producto de la factura o nota crédito.
type Item struct {
	OrderItemID string
	SKU         string
	Name        string
	Qty         decimal.Decimal
	RowTotal    decimal.Decimal // base row total
	Discount    decimal.Decimal // base discount amount
	// AlreadyCalculated ítem padre cuyo impuesto se calcula en sus hijos.
	AlreadyCalculated bool
	TaxCode           string
	Ref1              string
	Ref2              string
}

// LineBuilder acumula las líneas de UN documento. Se crea por envío y no se
// comparte: el contador y el índice nunca cruzan documentos.
type LineBuilder struct {
	credit bool
	last   int
	lines  []Line
	index  LineIndex
}

// NewLineBuilder crea el acumulador. credit=true niega los montos (nota crédito).
func NewLineBuilder(credit bool) *LineBuilder {
	return &LineBuilder{credit: credit, index: make(LineIndex)}
}

func (b *LineBuilder) nextLineCode() int {
	b.last++
	return b.last
}

func (b *LineBuilder) signed(amount decimal.Decimal) decimal.Decimal {
	if b.credit {
		return amount.Neg()
	}
	return amount
}

// AddCharge agrega un cargo auxiliar. Monto cero no emite línea ni consume código.
func (b *LineBuilder) AddCharge(c Charge) (int, bool) {
	if c.Amount.IsZero() {
		return 0, false
	}
	amount := c.Amount
	if !c.Fee {
		amount = b.signed(amount)
	}
	itemCode := avatax.SKUOrDefault(c.SKU, c.DefaultSKU)

	code := b.nextLineCode()
	b.lines = append(b.lines, Line{
		LineCode:      code,
		ItemCode:      itemCode,
		Description:   c.Description,
		TaxCode:       c.TaxCode,
		NumberOfItems: decimal.NewFromInt(1),
		LineAmount:    amount,
		Discounted:    false,
	})
	b.index[code] = itemCode
	return code, true
}

// AddItem agrega un ítem de producto. Se omite si la cantidad es cero o si el
// ítem de orden ya fue calculado por otra vía.
func (b *LineBuilder) AddItem(it Item) (int, bool) {
	if it.AlreadyCalculated || it.Qty.IsZero() {
		return 0, false
	}

	code := b.nextLineCode()
	b.lines = append(b.lines, Line{
		LineCode:      code,
		ItemCode:      avatax.TruncateItemCode(it.SKU),
		Description:   it.Name,
		TaxCode:       it.TaxCode,
		NumberOfItems: it.Qty,
		LineAmount:    b.signed(it.RowTotal.Sub(it.Discount)),
		Discounted:    !it.Discount.IsZero(),
		Ref1:          it.Ref1,
		Ref2:          it.Ref2,
	})
	b.index[code] = it.OrderItemID
	return code, true
}

// Len número de líneas emitidas hasta ahora.
func (b *LineBuilder) Len() int { return len(b.lines) }

// Build devuelve copias de las líneas (en orden de emisión) y del índice.
func (b *LineBuilder) Build() ([]Line, LineIndex) {
	lines := make([]Line, len(b.lines))
	copy(lines, b.lines)
	index := make(LineIndex, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return lines, index
}

// ── Cargos con SKU y descripción fijos ───────────────────────────────────────

// AddShipping línea de envío con la clase de impuesto de envío de la tienda.
func (b *LineBuilder) AddShipping(amount decimal.Decimal, sku, taxCode string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku, TaxCode: taxCode,
		DefaultSKU: avatax.DefaultShippingSKU, Description: avatax.DefaultShippingDescription,
	})
}

func (b *LineBuilder) AddGiftWrapOrder(amount decimal.Decimal, sku, taxCode string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku, TaxCode: taxCode,
		DefaultSKU: avatax.DefaultGwOrderSKU, Description: avatax.DefaultGwOrderDescription,
	})
}

func (b *LineBuilder) AddGiftWrapItems(amount decimal.Decimal, sku, taxCode string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku, TaxCode: taxCode,
		DefaultSKU: avatax.DefaultGwItemsSKU, Description: avatax.DefaultGwItemsDescription,
	})
}

func (b *LineBuilder) AddGiftWrapPrintedCard(amount decimal.Decimal, sku, taxCode string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku, TaxCode: taxCode,
		DefaultSKU: avatax.DefaultGwPrintedCardSKU, Description: avatax.DefaultGwPrintedCardDescription,
	})
}

// AddAdjustmentRefund ajuste positivo de la nota crédito (se devuelve al cliente).
func (b *LineBuilder) AddAdjustmentRefund(amount decimal.Decimal, sku string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku,
		DefaultSKU: avatax.DefaultPositiveAdjustmentSKU, Description: avatax.DefaultPositiveAdjustmentDescription,
	})
}

// AddAdjustmentFee ajuste negativo de la nota crédito: cargo retenido, conserva signo.
func (b *LineBuilder) AddAdjustmentFee(amount decimal.Decimal, sku string) (int, bool) {
	return b.AddCharge(Charge{
		Amount: amount, SKU: sku, Fee: true,
		DefaultSKU: avatax.DefaultNegativeAdjustmentSKU, Description: avatax.DefaultNegativeAdjustmentDescription,
	})
}
