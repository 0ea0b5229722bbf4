package entity

import "time"

// Order orden de venta de la que derivan facturas y notas crédito.
type Order struct {
	ID              string
	IncrementID     string
	StoreID         string
	CustomerID      string // vacío para compras como invitado
	CustomerEmail   string
	Status          string
	CurrencyCode    string
	ShippingAddress *Address // nil en órdenes virtuales
	BillingAddress  *Address
	CreatedAt       time.Time
}

// CustomerCode identificador del cliente para AvaTax: id de cliente o, si es invitado, su email.
func (o *Order) CustomerCode() string {
	if o.CustomerID != "" {
		return o.CustomerID
	}
	return o.CustomerEmail
}

// ShipTo dirección de destino: envío y, en su defecto, facturación. nil si no hay ninguna.
func (o *Order) ShipTo() *Address {
	if !o.ShippingAddress.IsEmpty() {
		return o.ShippingAddress
	}
	if !o.BillingAddress.IsEmpty() {
		return o.BillingAddress
	}
	return nil
}
