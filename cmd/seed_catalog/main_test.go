package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadCatalog_NormalizaFilas(t *testing.T) {
	csv := "sku;nombre;unidad;precio;categoria\n" +
		"CH-02; Chorizo ahumado ;KG;12,50;embutidos\n" +
		"CH-01;Longaniza;;8.00\n" +
		";sin sku;kg;1\n" +
		"CH-02;Chorizo ahumado x2;kg;13;embutidos\n"

	rows, err := readCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "CH-01", rows[0].SKU)
	assert.Equal(t, "kg", rows[0].Unit, "unidad vacía usa kg")
	assert.Equal(t, "CH-02", rows[1].SKU)
	assert.Equal(t, "Chorizo ahumado x2", rows[1].Name, "el último SKU repetido gana")
	assert.Equal(t, "13", rows[1].Price.String())
	assert.Equal(t, "embutidos", rows[1].Category)
}

func TestReadCatalog_IDEstablePorSKU(t *testing.T) {
	a, err := readCatalog(strings.NewReader("h;h;h;h\nCH-01;Longaniza;kg;8\n"))
	require.NoError(t, err)
	b, err := readCatalog(strings.NewReader("h;h;h;h\nCH-01;Otro nombre;kg;9\n"))
	require.NoError(t, err)
	assert.Equal(t, a[0].ID, b[0].ID)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("h;h;h;h\nCH-01;Longaniza;kg\n"))
	assert.Error(t, err)

	_, err = readCatalog(strings.NewReader("h;h;h;h\nCH-01;Longaniza;kg;gratis\n"))
	assert.Error(t, err)
}

func TestReadCatalog_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("h;h;h;h\nMO-01;Morcilla de cañón;kg;5\n")
	require.NoError(t, err)

	rows, err := readCatalog(transform.NewReader(strings.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Morcilla de cañón", rows[0].Name)
}

func TestWriteSeedSQL(t *testing.T) {
	rows, err := readCatalog(strings.NewReader("h;h;h;h\nCH-01;Chorizo D'Ana;kg;8\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSeedSQL(&buf, rows))
	sql := buf.String()
	assert.Contains(t, sql, "INSERT INTO products")
	assert.Contains(t, sql, "'Chorizo D''Ana'")
	assert.Contains(t, sql, "8.00")
	assert.Contains(t, sql, "ON CONFLICT (sku) DO UPDATE")
}
