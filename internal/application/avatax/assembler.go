package avatax

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/avatax-connector/internal/domain"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
)

// Assembler construye el documento AvaTax de una factura o nota crédito.
type Assembler struct {
	products repository.ProductRepository
	now      func() time.Time
}

// NewAssembler construye el ensamblador. now nil usa time.Now.
func NewAssembler(products repository.ProductRepository, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{products: products, now: now}
}

// Assemble arma cabecera y líneas en el orden fijo: envío, envolturas (orden, ítems,
// tarjeta impresa), ítems en el orden de la colección y, en notas crédito, ajustes.
// Falla con domain.ErrNoAddress antes de construir cualquier línea si la orden no
// tiene dirección.
func (a *Assembler) Assemble(ctx context.Context, h transactionHandler, order *entity.Order, cfg *entity.StoreConfig) (*tax.Document, tax.LineIndex, error) {
	src := h.document()
	shipTo := order.ShipTo()
	if shipTo == nil {
		return nil, nil, fmt.Errorf("%s %s: %w", h.kind(), src.IncrementID, domain.ErrNoAddress)
	}

	loc := cfg.Location()
	now := a.now()
	header := tax.Header{
		DocumentCode:       src.IncrementID,
		TransactionType:    h.transactionType(),
		CompanyCode:        cfg.CompanyCode,
		CustomerCode:       order.CustomerCode(),
		CurrencyCode:       order.CurrencyCode,
		TransactionDate:    documentDate(src, now).In(loc),
		TaxCalculationDate: h.calculationDate(order, now).In(loc),
		ShipFrom:           toLocation(&cfg.Origin),
		ShipTo:             toLocation(shipTo),
	}

	products, err := a.loadProducts(ctx, src.Items)
	if err != nil {
		return nil, nil, err
	}

	b := tax.NewLineBuilder(h.credit())
	b.AddShipping(src.BaseShippingAmount, cfg.ShippingSKU, cfg.ShippingTaxCode)
	b.AddGiftWrapOrder(src.GwBasePrice, cfg.GwOrderSKU, cfg.GiftTaxCode)
	b.AddGiftWrapItems(src.GwItemsBasePrice, cfg.GwItemsSKU, cfg.GiftTaxCode)
	b.AddGiftWrapPrintedCard(src.GwPrintedCardBasePrice, cfg.GwPrintedCardSKU, cfg.GiftTaxCode)
	for _, it := range src.Items {
		b.AddItem(toLineItem(it, products[it.ProductID], cfg))
	}
	h.addTrailingLines(b, cfg)

	lines, index := b.Build()
	return &tax.Document{Header: header, Lines: lines}, index, nil
}

func (a *Assembler) loadProducts(ctx context.Context, items []*entity.DocumentItem) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	if len(ids) == 0 || a.products == nil {
		return map[string]*entity.Product{}, nil
	}
	products, err := a.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	return products, nil
}

// ── helpers privados ──────────────────────────────────────────────────────────

func documentDate(src *entity.SalesDocument, now time.Time) time.Time {
	if src.CreatedAt.IsZero() {
		return now
	}
	return src.CreatedAt
}

func toLineItem(it *entity.DocumentItem, product *entity.Product, cfg *entity.StoreConfig) tax.Item {
	item := tax.Item{
		OrderItemID:       it.OrderItemID,
		SKU:               it.SKU,
		Name:              it.Name,
		Qty:               it.Qty,
		RowTotal:          it.BaseRowTotal,
		Discount:          it.BaseDiscountAmount,
		AlreadyCalculated: it.ChildrenCalculated,
	}
	if product != nil {
		item.TaxCode = product.TaxCode
		item.Ref1 = product.AttributeValue(cfg.Ref1Attribute)
		item.Ref2 = product.AttributeValue(cfg.Ref2Attribute)
	}
	return item
}

func toLocation(a *entity.Address) tax.Location {
	if a == nil {
		return tax.Location{}
	}
	return tax.Location{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
