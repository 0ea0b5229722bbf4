package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
)

var (
	_ repository.OrderRepository        = (*OrderRepo)(nil)
	_ repository.OrderHistoryRepository = (*OrderHistoryRepo)(nil)
)

// OrderRepo lectura de órdenes con sus direcciones.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene la orden y sus direcciones de envío y facturación. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	const query = `
		SELECT id, increment_id, store_id, customer_id, customer_email, status, currency_code, created_at
		FROM orders WHERE id = $1`
	var o entity.Order
	var customerID, email *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.IncrementID, &o.StoreID, &customerID, &email, &o.Status, &o.CurrencyCode, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.CustomerID = derefStr(customerID)
	o.CustomerEmail = derefStr(email)

	const addrQuery = `
		SELECT address_type, COALESCE(line1, ''), COALESCE(line2, ''), COALESCE(line3, ''),
		       COALESCE(city, ''), COALESCE(region, ''), COALESCE(postal_code, ''), COALESCE(country, '')
		FROM order_addresses WHERE order_id = $1`
	rows, err := r.q.Query(ctx, addrQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list order addresses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var a entity.Address
		if err := rows.Scan(&kind, &a.Line1, &a.Line2, &a.Line3, &a.City, &a.Region, &a.PostalCode, &a.Country); err != nil {
			return nil, fmt.Errorf("scan order address: %w", err)
		}
		switch kind {
		case "shipping":
			o.ShippingAddress = &a
		case "billing":
			o.BillingAddress = &a
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderHistoryRepo comentarios del historial de la orden.
type OrderHistoryRepo struct {
	q Querier
}

// NewOrderHistoryRepository construye el adaptador.
func NewOrderHistoryRepository(q Querier) *OrderHistoryRepo {
	return &OrderHistoryRepo{q: q}
}

// Insert agrega un comentario. Status vacío se guarda como NULL (no cambia el estado).
func (r *OrderHistoryRepo) Insert(ctx context.Context, h *entity.StatusHistory) error {
	const query = `
		INSERT INTO order_status_history (id, order_id, status, comment, is_customer_notified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, h.ID, h.OrderID, nullIfEmpty(h.Status), h.Comment, h.IsCustomerNotified, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order history: %w", err)
	}
	return nil
}
