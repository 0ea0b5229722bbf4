package entity

import (
	"encoding/json"
	"time"
)

// AuditLog registro de una llamada a AvaTax (request, resultado y configuración usada).
type AuditLog struct {
	ID             string
	StoreID        string
	Category       string // Transaction | Ping
	Level          string // Success | Error
	DocumentCode   string
	Request        json.RawMessage
	Result         json.RawMessage
	ConfigSnapshot json.RawMessage
	CreatedAt      time.Time
}

// StatusHistory comentario en el historial de la orden.
type StatusHistory struct {
	ID                 string
	OrderID            string
	Status             string
	Comment            string
	IsCustomerNotified bool
	CreatedAt          time.Time
}
