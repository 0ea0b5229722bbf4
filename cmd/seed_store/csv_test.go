package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `store_id,company_code,service_url,account_id,license_key,shipping_sku,full_stop_on_error,timezone,locale,origin_line1,origin_city,origin_region,origin_postal_code,origin_country,extra
1,ACME,https://sandbox-rest.avatax.com,1100,KEY,SHIP,Yes,America/New_York,en_US,100 Main St,Seattle,WA,98101,US,x
2,ACME-ES,,,,,no,Europe/Madrid,es_ES,,,,,,
`

func TestParseStoreConfigs(t *testing.T) {
	stores, err := parseStoreConfigs(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, stores, 2)

	s := stores[0]
	assert.Equal(t, "1", s.StoreID)
	assert.Equal(t, "ACME", s.CompanyCode)
	assert.Equal(t, "KEY", s.LicenseKey)
	assert.Equal(t, "SHIP", s.ShippingSKU)
	assert.True(t, s.FullStopOnError)
	assert.Equal(t, "Seattle", s.Origin.City)
	assert.Equal(t, "US", s.Origin.Country)

	assert.False(t, stores[1].FullStopOnError)
	assert.True(t, stores[1].Origin.IsEmpty())
}

func TestParseStoreConfigs_Errores(t *testing.T) {
	_, err := parseStoreConfigs(strings.NewReader("company_code\nACME\n"))
	assert.ErrorContains(t, err, "store_id")

	_, err = parseStoreConfigs(strings.NewReader("store_id\n1\n1\n"))
	assert.ErrorContains(t, err, "repetido")

	_, err = parseStoreConfigs(strings.NewReader("store_id,full_stop_on_error\n1,quizás\n"))
	assert.ErrorContains(t, err, "full_stop_on_error")
}

func TestParseStoreConfigs_FilasSinTiendaSeOmiten(t *testing.T) {
	stores, err := parseStoreConfigs(strings.NewReader("store_id,company_code\n,ACME\n7,B\n"))
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "7", stores[0].StoreID)
}

func TestDecodeInput_Latin1(t *testing.T) {
	// "Bogotá" en ISO-8859-1: á = 0xE1
	raw := []byte("store_id,origin_city\n1,Bogot\xe1\n")

	for _, enc := range []string{encodingAuto, encodingLatin1} {
		r, err := decodeInput(raw, enc)
		require.NoError(t, err)
		stores, err := parseStoreConfigs(r)
		require.NoError(t, err)
		assert.Equal(t, "Bogotá", stores[0].Origin.City, enc)
	}
}

func TestDecodeInput_UTF8ConBOM(t *testing.T) {
	raw := []byte("\xef\xbb\xbfstore_id,origin_city\n1,Bogotá\n")
	r, err := decodeInput(raw, encodingAuto)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "store_id"))

	_, err = decodeInput(raw, "utf-16")
	assert.Error(t, err)
}
