// seed_catalog genera un script SQL idempotente para poblar el catálogo de productos
// a partir de un CSV exportado del punto de venta.
//
// Uso: go run ./cmd/seed_catalog [-latin1] [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Columnas: sku;nombre;unidad;precio[;categoría]. La primera fila es el encabezado.
// Escribe: internal/infrastructure/postgres/migrations/003_seed_catalog.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace fija los UUID de producto derivados del SKU.
var catalogNamespace = uuid.MustParse("6f1c2a4e-9b7d-4c3a-8e51-2d0f7a9b3c10")

type catalogRow struct {
	ID       string
	SKU      string
	Name     string
	Unit     string
	Price    decimal.Decimal
	Category string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportaciones de Excel en Windows)")
	flag.Parse()

	csvPath := "productos.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "003_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeedSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

// readCatalog lee el CSV separado por ';'. Los SKU repetidos conservan la última fila.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	bySKU := make(map[string]catalogRow)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 4 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 4 columnas, hay %d", line, len(rec))
		}
		sku := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if sku == "" || name == "" {
			continue
		}
		unit := strings.ToLower(strings.TrimSpace(rec[2]))
		if unit == "" {
			unit = "kg"
		}
		// Precios con coma decimal ("12,50").
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[3])
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio negativo", line)
		}
		row := catalogRow{
			ID:    uuid.NewSHA1(catalogNamespace, []byte(sku)).String(),
			SKU:   sku,
			Name:  name,
			Unit:  unit,
			Price: price,
		}
		if len(rec) > 4 {
			row.Category = strings.TrimSpace(rec[4])
		}
		bySKU[sku] = row
	}

	out := make([]catalogRow, 0, len(bySKU))
	for _, row := range bySKU {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func writeSeedSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	if len(rows) == 0 {
		b.WriteString("SELECT 1;\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO products (id, sku, name, category_id, unit, price) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %s)%s\n",
			r.ID, escapeSQL(r.SKU), escapeSQL(r.Name), escapeSQL(r.Category), escapeSQL(r.Unit), r.Price.StringFixed(2), sep)
	}
	b.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, category_id = EXCLUDED.category_id,\n")
	b.WriteString("  unit = EXCLUDED.unit, price = EXCLUDED.price, updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
