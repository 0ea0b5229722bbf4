package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionResponse resultado de POST /api/invoices/:id/avatax y /api/creditmemos/:id/avatax.
type SubmissionResponse struct {
	DocumentType string          `json:"document_type"`
	DocumentID   string          `json:"document_id"`
	DocumentCode string          `json:"document_code"`
	StoreID      string          `json:"store_id"`
	ResultCode   string          `json:"result_code"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	ExpectedTax  decimal.Decimal `json:"expected_tax"`
	Balanced     bool            `json:"balanced"`
	LineCount    int             `json:"line_count"`
	LineIndex    map[int]string  `json:"line_index"` // lineCode → ítem de orden o SKU sintético
	Messages     []string        `json:"messages,omitempty"`
}

// PingResponse resultado de GET /api/stores/:id/avatax/ping.
type PingResponse struct {
	StoreID            string `json:"store_id"`
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	Version            string `json:"version,omitempty"`
	AuthenticationType string `json:"authentication_type,omitempty"`
}

// ErrorStatusResponse estado de la bandera de error de una tienda.
type ErrorStatusResponse struct {
	StoreID string `json:"store_id"`
	Raised  bool   `json:"raised"`
}

// AuditLogResponse entrada del log de auditoría en listados.
type AuditLogResponse struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Level        string    `json:"level"`
	DocumentCode string    `json:"document_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmissionEvent mensaje de la cola que solicita el envío de un documento.
type SubmissionEvent struct {
	DocumentType string `json:"document_type" validate:"required,oneof=invoice creditmemo"`
	DocumentID   string `json:"document_id" validate:"required"`
}

// SubmissionErrorResponse error de envío o conciliación; Submission trae lo que respondió AvaTax.
type SubmissionErrorResponse struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Submission *SubmissionResponse `json:"submission,omitempty"`
}
