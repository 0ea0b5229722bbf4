package avatax

import (
	"context"

	"github.com/jhoicas/avatax-connector/internal/domain"
	"github.com/jhoicas/avatax-connector/internal/domain/entity"
	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	"github.com/jhoicas/avatax-connector/pkg/i18n"
	"github.com/jhoicas/avatax-connector/pkg/logger"
)

// Reconciler concilia el resultado de AvaTax con el impuesto registrado localmente.
type Reconciler struct {
	history HistoryAppender
	metrics Metrics
	log     *logger.Logger
}

// NewReconciler construye el conciliador. metrics puede ser nil.
func NewReconciler(history HistoryAppender, metrics Metrics, log *logger.Logger) *Reconciler {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Reconciler{history: history, metrics: metrics, log: log}
}

// Reconcile en éxito agrega el comentario al historial y compara el impuesto con igualdad
// decimal exacta; en fallo devuelve *domain.CommitFailureError.
func (r *Reconciler) Reconcile(ctx context.Context, h transactionHandler, order *entity.Order, cfg *entity.StoreConfig, res *tax.SubmissionResult) error {
	src := h.document()
	if res.HasError {
		return &domain.CommitFailureError{
			DocumentCode: src.IncrementID,
			ResultCode:   res.ResultCode,
			Messages:     res.ErrorMessages(),
		}
	}

	comment := i18n.Sprintf(cfg.Locale, h.historyMessage(), src.IncrementID)
	if err := r.history.Append(ctx, order, comment); err != nil {
		// el documento ya quedó registrado en AvaTax; el comentario no lo invalida
		r.log.Error().Err(err).Str("order_id", order.ID).Str("document_code", src.IncrementID).Msg("no se pudo agregar el comentario al historial")
	}

	expected := h.expectedTax()
	if !res.TotalTax.Equal(expected) {
		r.metrics.IncUnbalanced(h.kind())
		return &domain.UnbalancedError{
			DocumentCode: src.IncrementID,
			Collected:    expected,
			Actual:       res.TotalTax,
		}
	}
	return nil
}
