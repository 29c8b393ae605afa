// Package pdf genera el reporte de stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ubicación | SKU | Producto | Cantidad | Unidad       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingredientes a reponer (stock, punto, sugerido)      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lztmeat/inventario-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 200, Green: 60, Blue: 0}
)

var _ report.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, rep *report.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("STOCK POR UBICACIÓN"))
	m.AddRows(stockHeaderRow())
	if len(rep.Lines) == 0 {
		m.AddRows(emptyRow("Sin existencias registradas"))
	}
	m.AddRows(stockRows(rep.Lines)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("INGREDIENTES A REPONER"))
	m.AddRows(reorderHeaderRow())
	if len(rep.Reorder) == 0 {
		m.AddRows(emptyRow("Ningún ingrediente bajo su punto de reorden"))
	}
	m.AddRows(reorderRows(rep)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *report.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d entradas de stock · %d ingredientes a reponer", len(rep.Lines), len(rep.Reorder)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func stockHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Ubicación", 3, align.Left),
		headerCell("SKU", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Cantidad", 2, align.Right),
		headerCell("Unidad", 1, align.Center),
	)
}

func stockRows(lines []report.StockLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			cell(l.LocationName, 3, align.Left),
			cell(l.SKU, 2, align.Left),
			cell(l.ProductName, 4, align.Left),
			cell(l.Quantity.StringFixed(2), 2, align.Right),
			cell(l.Unit, 1, align.Center),
		))
	}
	return result
}

func reorderHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("#", 1, align.Center),
		headerCell("Código", 2, align.Left),
		headerCell("Ingrediente", 3, align.Left),
		headerCell("Stock", 2, align.Right),
		headerCell("Reorden", 2, align.Right),
		headerCell("Sugerido", 2, align.Right),
	)
}

func reorderRows(rep *report.StockReport) []core.Row {
	result := make([]core.Row, 0, len(rep.Reorder))
	for _, r := range rep.Reorder {
		stockProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if r.BelowMinimum {
			stockProps.Style = fontstyle.Bold
			stockProps.Color = colorAlert
		}
		result = append(result, row.New(6).Add(
			cell(fmt.Sprintf("%d", r.Priority), 1, align.Center),
			cell(r.Code, 2, align.Left),
			cell(r.Name, 3, align.Left),
			col.New(2).Add(text.New(r.CurrentStock.StringFixed(2)+" "+r.Unit, stockProps)),
			cell(r.ReorderPoint.StringFixed(2), 2, align.Right),
			cell(r.SuggestedOrderQty.StringFixed(2), 2, align.Right),
		))
	}
	return result
}
