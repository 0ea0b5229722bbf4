// Package metrics métricas Prometheus del conector AvaTax.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implementa el puerto avatax.Metrics.
type Collector struct {
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	unbalanced  *prometheus.CounterVec
	pings       *prometheus.CounterVec
	errorFlag   *prometheus.GaugeVec
}

// New registra las métricas en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "avatax_submissions_total",
			Help: "Documentos enviados a AvaTax por tipo y código de resultado.",
		}, []string{"kind", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "avatax_submission_duration_seconds",
			Help:    "Duración de la llamada CreateTransaction.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		unbalanced: f.NewCounterVec(prometheus.CounterOpts{
			Name: "avatax_unbalanced_total",
			Help: "Documentos cuyo impuesto calculado no coincide con el registrado.",
		}, []string{"kind"}),
		pings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "avatax_pings_total",
			Help: "Verificaciones de credenciales por resultado.",
		}, []string{"authenticated"}),
		errorFlag: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "avatax_error_flag",
			Help: "1 si la tienda tiene la bandera de error levantada.",
		}, []string{"store_id"}),
	}
}

func (c *Collector) ObserveSubmission(kind, resultCode string, elapsed time.Duration) {
	c.submissions.WithLabelValues(kind, resultCode).Inc()
	c.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (c *Collector) IncUnbalanced(kind string) {
	c.unbalanced.WithLabelValues(kind).Inc()
}

func (c *Collector) IncPing(authenticated bool) {
	label := "false"
	if authenticated {
		label = "true"
	}
	c.pings.WithLabelValues(label).Inc()
}

func (c *Collector) SetErrorFlag(storeID string, raised bool) {
	v := 0.0
	if raised {
		v = 1
	}
	c.errorFlag.WithLabelValues(storeID).Set(v)
}
