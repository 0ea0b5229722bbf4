package tax

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/pkg/avatax"
)

// Message mensaje devuelto por el WS (o sintetizado a partir de un error).
type Message struct {
	Summary  string `json:"summary"`
	Details  string `json:"details,omitempty"`
	Severity string `json:"severity,omitempty"`
	RefersTo string `json:"refersTo,omitempty"`
}

// SubmissionResult resultado normalizado de un envío. Lo consume una sola vez la conciliación.
type SubmissionResult struct {
	HasError     bool            `json:"hasError"`
	ResultCode   string          `json:"resultCode"`
	DocumentCode string          `json:"documentCode,omitempty"`
	TotalTax     decimal.Decimal `json:"totalTax"` // solo válido si HasError == false
	Messages     []Message       `json:"messages,omitempty"`
	ActualResult json.RawMessage `json:"actualResult,omitempty"`
}

// ExceptionResult sintetiza un resultado fallido a partir de un error de transporte.
func ExceptionResult(err error) *SubmissionResult {
	msg := "respuesta vacía del servicio"
	if err != nil {
		msg = err.Error()
	}
	return &SubmissionResult{
		HasError:   true,
		ResultCode: avatax.ResultException,
		Messages:   []Message{{Summary: msg, Severity: avatax.ResultException}},
	}
}

// ErrorMessages aplana los mensajes para reportarlos en errores de dominio.
func (r *SubmissionResult) ErrorMessages() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		s := m.Summary
		if m.Details != "" {
			s += " (" + m.Details + ")"
		}
		if m.RefersTo != "" {
			s += " [" + m.RefersTo + "]"
		}
		out = append(out, s)
	}
	return out
}

// PingResponse respuesta del endpoint de utilidades /ping.
type PingResponse struct {
	Version            string `json:"version"`
	Authenticated      bool   `json:"authenticated"`
	AuthenticationType string `json:"authenticationType"`
}
