// Package avatax orquesta el envío de facturas y notas crédito a AvaTax:
// ensamblado del documento, envío con auditoría y conciliación del impuesto.
package avatax

import (
	"context"
	"time"

	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
)

// Transport puerto de salida hacia el WS AvaTax. La implementación concreta es REST;
// para tests se inyecta un fake.
type Transport interface {
	// CreateTransaction puede devolver un resultado con HasError=true (el WS respondió con error)
	// o un error (no hubo respuesta interpretable).
	CreateTransaction(ctx context.Context, cred tax.Credentials, doc *tax.Document) (*tax.SubmissionResult, error)
	Ping(ctx context.Context, cred tax.Credentials) (*tax.PingResponse, error)
}

// HistoryAppender agrega un comentario al historial de la orden.
type HistoryAppender interface {
	Append(ctx context.Context, order *entity.Order, comment string) error
}

// Metrics contadores e histogramas del conector. nil usa noopMetrics.
type Metrics interface {
	ObserveSubmission(kind, resultCode string, elapsed time.Duration)
	IncUnbalanced(kind string)
	IncPing(authenticated bool)
	SetErrorFlag(storeID string, raised bool)
}

type noopMetrics struct{}

func (noopMetrics) ObserveSubmission(string, string, time.Duration) {}
func (noopMetrics) IncUnbalanced(string)                           {}
func (noopMetrics) IncPing(bool)                                   {}
func (noopMetrics) SetErrorFlag(string, bool)                      {}
