package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository    = (*InvoiceRepo)(nil)
	_ repository.CreditMemoRepository = (*CreditMemoRepo)(nil)
)

const selectSalesDocument = `
	SELECT id, increment_id, order_id, store_id,
	       base_shipping_amount, gw_base_price, gw_items_base_price, gw_printed_card_base_price,
	       base_tax_amount, base_adjustment_positive, base_adjustment_negative, created_at
	FROM sales_documents WHERE id = $1 AND document_type = $2`

// InvoiceRepo lectura de facturas (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// GetByID obtiene la factura con sus ítems en orden de posición. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	doc, _, _, err := getSalesDocument(ctx, r.q, id, entity.DocumentTypeInvoice)
	if err != nil || doc == nil {
		return nil, err
	}
	return &entity.Invoice{SalesDocument: *doc}, nil
}

// CreditMemoRepo lectura de notas crédito (usable con pool o tx).
type CreditMemoRepo struct {
	q Querier
}

// NewCreditMemoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditMemoRepository(q Querier) *CreditMemoRepo {
	return &CreditMemoRepo{q: q}
}

// GetByID obtiene la nota crédito con ajustes e ítems. (nil, nil) si no existe.
func (r *CreditMemoRepo) GetByID(ctx context.Context, id string) (*entity.CreditMemo, error) {
	doc, positive, negative, err := getSalesDocument(ctx, r.q, id, entity.DocumentTypeCreditMemo)
	if err != nil || doc == nil {
		return nil, err
	}
	return &entity.CreditMemo{
		SalesDocument:          *doc,
		BaseAdjustmentPositive: positive,
		BaseAdjustmentNegative: negative,
	}, nil
}

func getSalesDocument(ctx context.Context, q Querier, id, docType string) (*entity.SalesDocument, decimal.Decimal, decimal.Decimal, error) {
	var doc entity.SalesDocument
	var positive, negative decimal.Decimal
	err := q.QueryRow(ctx, selectSalesDocument, id, docType).Scan(
		&doc.ID, &doc.IncrementID, &doc.OrderID, &doc.StoreID,
		&doc.BaseShippingAmount, &doc.GwBasePrice, &doc.GwItemsBasePrice, &doc.GwPrintedCardBasePrice,
		&doc.BaseTaxAmount, &positive, &negative, &doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decimal.Zero, decimal.Zero, nil
		}
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("get %s: %w", docType, err)
	}

	items, err := listDocumentItems(ctx, q, id)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	doc.Items = items
	return &doc, positive, negative, nil
}

func listDocumentItems(ctx context.Context, q Querier, documentID string) ([]*entity.DocumentItem, error) {
	const query = `
		SELECT id, document_id, order_item_id, COALESCE(product_id, ''), sku, name,
		       qty, base_row_total, base_discount_amount, children_calculated
		FROM sales_document_items WHERE document_id = $1 ORDER BY position, id`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.OrderItemID, &it.ProductID, &it.SKU, &it.Name,
			&it.Qty, &it.BaseRowTotal, &it.BaseDiscountAmount, &it.ChildrenCalculated); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
