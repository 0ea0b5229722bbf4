package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/avatax-connector/pkg/i18n"
)

func TestSprintf_Locales(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"", "Invoice #100000021 was saved to AvaTax"},
		{"en_US", "Invoice #100000021 was saved to AvaTax"},
		{"es_CO", "La factura #100000021 fue guardada en AvaTax"},
		{"es", "La factura #100000021 fue guardada en AvaTax"},
		{"xx-invalid-", "Invoice #100000021 was saved to AvaTax"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Sprintf(tt.locale, i18n.MsgInvoiceSaved, "100000021"))
		})
	}
}

func TestSprintf_NotaCreditoYPing(t *testing.T) {
	assert.Equal(t, "Credit memo #7 was saved to AvaTax", i18n.Sprintf("en_GB", i18n.MsgCreditMemoSaved, "7"))
	assert.Equal(t, `AvaTax Rest V2 Error: "boom"`, i18n.Sprintf("", i18n.MsgPingFailed, "boom"))
}

func TestSprintf_NoAutorizado(t *testing.T) {
	assert.Equal(t, "Not Authorized", i18n.Sprintf("", i18n.MsgNotAuthenticated))
	assert.Equal(t, "No autorizado", i18n.Sprintf("es_CO", i18n.MsgNotAuthenticated))
	assert.Equal(t, `AvaTax Rest V2 Error: "Not Authorized"`,
		i18n.Sprintf("", i18n.MsgPingFailed, i18n.Sprintf("", i18n.MsgNotAuthenticated)))
}
