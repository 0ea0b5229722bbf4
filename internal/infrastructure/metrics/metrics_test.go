package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/avatax-connector/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveSubmission("invoice", "Success", 120*time.Millisecond)
	c.ObserveSubmission("invoice", "Success", 80*time.Millisecond)
	c.ObserveSubmission("creditmemo", "Exception", time.Second)
	c.IncUnbalanced("invoice")
	c.IncPing(true)
	c.IncPing(false)
	c.IncPing(false)

	expected := `
# HELP avatax_submissions_total Documentos enviados a AvaTax por tipo y código de resultado.
# TYPE avatax_submissions_total counter
avatax_submissions_total{kind="creditmemo",result="Exception"} 1
avatax_submissions_total{kind="invoice",result="Success"} 2
# HELP avatax_unbalanced_total Documentos cuyo impuesto calculado no coincide con el registrado.
# TYPE avatax_unbalanced_total counter
avatax_unbalanced_total{kind="invoice"} 1
# HELP avatax_pings_total Verificaciones de credenciales por resultado.
# TYPE avatax_pings_total counter
avatax_pings_total{authenticated="false"} 2
avatax_pings_total{authenticated="true"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"avatax_submissions_total", "avatax_unbalanced_total", "avatax_pings_total")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "avatax_submission_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "un histograma por kind")
}

func TestCollector_ErrorFlagGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.SetErrorFlag("store-1", true)
	c.SetErrorFlag("store-2", true)
	c.SetErrorFlag("store-2", false)

	expected := `
# HELP avatax_error_flag 1 si la tienda tiene la bandera de error levantada.
# TYPE avatax_error_flag gauge
avatax_error_flag{store_id="store-1"} 1
avatax_error_flag{store_id="store-2"} 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "avatax_error_flag"))
}
