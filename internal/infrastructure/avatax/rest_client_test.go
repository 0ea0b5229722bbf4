package avatax_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	infraavatax "github.com/jhoicas/avatax-connector/internal/infrastructure/avatax"
	pkgavatax "github.com/jhoicas/avatax-connector/pkg/avatax"
)

func testDocument() *tax.Document {
	date := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return &tax.Document{
		Header: tax.Header{
			DocumentCode:       "100000021",
			TransactionType:    pkgavatax.TransactionReturnInvoice,
			CompanyCode:        "DEFAULT",
			CustomerCode:       "42",
			CurrencyCode:       "USD",
			TransactionDate:    date,
			TaxCalculationDate: date.AddDate(0, 0, -10),
			ShipFrom:           tax.Location{Line1: "100 Ravine Ln", City: "Bainbridge Island", Region: "WA", PostalCode: "98110", Country: "US"},
			ShipTo:             tax.Location{Line1: "1 Main St", City: "Seattle", Region: "WA", PostalCode: "98101", Country: "US"},
		},
		Lines: []tax.Line{
			{LineCode: 1, ItemCode: "Shipping", Description: "Shipping costs", TaxCode: "FR020100", NumberOfItems: decimal.NewFromInt(1), LineAmount: decimal.RequireFromString("-5.00")},
			{LineCode: 2, ItemCode: "SKU-1", Description: "Camiseta", NumberOfItems: decimal.NewFromInt(2), LineAmount: decimal.RequireFromString("-35.50"), Discounted: true, Ref1: "UPC"},
		},
	}
}

func credentials(url string) tax.Credentials {
	return tax.Credentials{ServiceURL: url, AccountID: "2000134479", LicenseKey: "LICENSE"}
}

func TestCreateTransaction_Exitoso(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/transactions/create", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "2000134479", user)
		assert.Equal(t, "LICENSE", pass)
		assert.Contains(t, r.Header.Get("X-Avalara-Client"), "avatax-connector")

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"100000021","status":"Committed","totalTax":-3.59}`))
	}))
	defer srv.Close()

	c := infraavatax.NewRESTClient(5*time.Second, "test")
	res, err := c.CreateTransaction(context.Background(), credentials(srv.URL), testDocument())
	require.NoError(t, err)

	assert.False(t, res.HasError)
	assert.Equal(t, pkgavatax.ResultSuccess, res.ResultCode)
	assert.True(t, res.TotalTax.Equal(decimal.RequireFromString("-3.59")), "got %s", res.TotalTax)
	assert.NotEmpty(t, res.ActualResult)

	assert.Equal(t, "ReturnInvoice", got["type"])
	assert.Equal(t, "100000021", got["code"])
	assert.Equal(t, "2026-03-15", got["date"])
	assert.Equal(t, true, got["commit"])
	override, ok := got["taxOverride"].(map[string]any)
	require.True(t, ok, "fecha de cálculo distinta debe enviar taxOverride")
	assert.Equal(t, "2026-03-05", override["taxDate"])

	lines := got["lines"].([]any)
	require.Len(t, lines, 2)
	first := lines[0].(map[string]any)
	assert.Equal(t, "1", first["number"])
	assert.Equal(t, -5.0, first["amount"])
	assert.Equal(t, "FR020100", first["taxCode"])
	second := lines[1].(map[string]any)
	assert.Equal(t, true, second["discounted"])
	assert.Equal(t, "UPC", second["ref1"])
	_, hasTaxCode := second["taxCode"]
	assert.False(t, hasTaxCode, "taxCode vacío no se envía")
}

func TestCreateTransaction_MismaFechaSinTaxOverride(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"code":"1","totalTax":0}`))
	}))
	defer srv.Close()

	doc := testDocument()
	doc.Header.TaxCalculationDate = doc.Header.TransactionDate
	_, err := infraavatax.NewRESTClient(0, "").CreateTransaction(context.Background(), credentials(srv.URL), doc)
	require.NoError(t, err)
	_, ok := got["taxOverride"]
	assert.False(t, ok)
}

func TestCreateTransaction_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"AddressRangeError","message":"Address not geocoded","details":[{"code":"AddressRangeError","message":"Address not geocoded","description":"The address number is out of range","severity":"Error","refersTo":"Addresses[0]"}]}}`))
	}))
	defer srv.Close()

	res, err := infraavatax.NewRESTClient(0, "").CreateTransaction(context.Background(), credentials(srv.URL), testDocument())
	require.NoError(t, err, "una respuesta de error del WS no es un error de transporte")
	assert.True(t, res.HasError)
	assert.Equal(t, pkgavatax.ResultError, res.ResultCode)
	assert.Equal(t, "100000021", res.DocumentCode)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "Address not geocoded", res.Messages[0].Summary)
	assert.Equal(t, "Addresses[0]", res.Messages[0].RefersTo)
}

func TestCreateTransaction_RespuestaNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := infraavatax.NewRESTClient(0, "").CreateTransaction(context.Background(), credentials(srv.URL), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestCreateTransaction_SinURL(t *testing.T) {
	_, err := infraavatax.NewRESTClient(0, "").CreateTransaction(context.Background(), tax.Credentials{}, testDocument())
	assert.Error(t, err)
}

func TestCreateTransaction_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := infraavatax.NewRESTClient(0, "").CreateTransaction(ctx, credentials(srv.URL), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout o cancelación")
}

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestPing_Autenticado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/utilities/ping", r.URL.Path)
		_, _ = w.Write([]byte(`{"version":"24.2.0","authenticated":true,"authenticationType":"AccountIdLicenseKey"}`))
	}))
	defer srv.Close()

	res, err := infraavatax.NewRESTClient(0, "").Ping(context.Background(), credentials(srv.URL))
	require.NoError(t, err)
	assert.True(t, res.Authenticated)
	assert.Equal(t, "24.2.0", res.Version)
	assert.Equal(t, "AccountIdLicenseKey", res.AuthenticationType)
}

func TestPing_RespuestaTexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"Service unavailable"`))
	}))
	defer srv.Close()

	_, err := infraavatax.NewRESTClient(0, "").Ping(context.Background(), credentials(srv.URL))
	require.Error(t, err)
	assert.Equal(t, "Service unavailable", err.Error())
}

func TestPing_ErrorAutenticacion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"AuthenticationException","message":"Authentication failed"}}`))
	}))
	defer srv.Close()

	_, err := infraavatax.NewRESTClient(0, "").Ping(context.Background(), credentials(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication failed")
}
