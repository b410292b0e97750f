package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeText_Latin1Automatico(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("código;serie\nPC-1;Señal\n"))
	require.NoError(t, err)

	text, err := decodeText(raw, "auto")
	require.NoError(t, err)
	assert.Contains(t, text, "Señal")
}

func TestDecodeText_QuitaBOM(t *testing.T) {
	text, err := decodeText([]byte("\xef\xbb\xbfasset_code,serial_no\n"), "auto")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "asset_code"))
}

func TestParseAssets(t *testing.T) {
	csvText := "Código;Serie;Marca;Valor;Garantía;Inicio garantía\n" +
		"LAP-001;SN1;Dell;3.500.000,50;3;15/01/2025\n" +
		"LAP-002;;HP;100;;\n" +
		"LAP-001;SN9;Dell;1;;\n" +
		"LAP-003;SN3;Lenovo;abc;;\n" +
		"LAP-004;SN4;O'Neil;;;\n"

	assets, skipped, err := parseAssets(csvText)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Len(t, skipped, 3)

	a := assets[0]
	assert.Equal(t, "LAP-001", a.AssetCode)
	assert.Equal(t, "3500000.5", a.Amount.String())
	require.NotNil(t, a.WarrantyEnd)
	assert.Equal(t, "2028-01-15", a.WarrantyEnd.Format("2006-01-02"))
	assert.Nil(t, assets[1].WarrantyEnd)
}

func TestParseAssets_FaltaColumna(t *testing.T) {
	_, _, err := parseAssets("codigo,marca\nX,Y\n")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"":             "0",
		"3500000":      "3500000",
		"$ 1.200,75":   "1200.75",
		"3,500,000.50": "3500000.5",
		"1.000.000":    "1000000",
	}
	for in, want := range cases {
		d, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.String(), in)
	}
	_, err := parseAmount("-5")
	assert.Error(t, err)
}

func TestWriteSeed_Idempotente(t *testing.T) {
	assets, _, err := parseAssets("asset_code,serial_no,vendor\nLAP-004,SN4,O'Neil\n")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, writeSeed(&b, assets, "activos.csv", "import"))
	sql := b.String()

	assert.Contains(t, sql, "ON CONFLICT (asset_code) DO NOTHING")
	assert.Contains(t, sql, "'O''Neil'")
	assert.Contains(t, sql, "'ASSET_REGISTERED'")
	assert.Contains(t, sql, "FROM ins;")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
