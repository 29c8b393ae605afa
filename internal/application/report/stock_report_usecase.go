// Package report arma los reportes descargables del inventario.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

// ReorderLister fuente de la lista de reposición de ingredientes.
type ReorderLister interface {
	ReorderList(ctx context.Context) ([]dto.ReorderSuggestionDTO, error)
}

// StockReportUseCase genera el PDF de stock por ubicación más los ingredientes a reponer.
type StockReportUseCase struct {
	repos     appinv.Repos
	reorder   ReorderLister
	generator StockReportGenerator
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(repos appinv.Repos, reorder ReorderLister, generator StockReportGenerator) *StockReportUseCase {
	return &StockReportUseCase{repos: repos, reorder: reorder, generator: generator, now: time.Now}
}

// Build reúne los datos del reporte sin generar el PDF.
func (uc *StockReportUseCase) Build(ctx context.Context) (*StockReport, error) {
	entries, err := uc.repos.Stock.List(ctx, repository.StockFilter{})
	if err != nil {
		return nil, fmt.Errorf("reporte: stock: %w", err)
	}
	locations, err := uc.repos.Locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: ubicaciones: %w", err)
	}
	locName := make(map[string]string, len(locations))
	for _, l := range locations {
		locName[l.ID] = l.Name
	}

	lines := make([]StockLine, 0, len(entries))
	for _, e := range entries {
		p, err := uc.repos.Products.GetByID(ctx, e.ProductID)
		if err != nil {
			return nil, fmt.Errorf("reporte: producto: %w", err)
		}
		line := StockLine{LocationName: locName[e.LocationID], Quantity: e.Quantity}
		if p != nil {
			line.SKU, line.ProductName, line.Unit = p.SKU, p.Name, p.Unit
		}
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].LocationName != lines[j].LocationName {
			return lines[i].LocationName < lines[j].LocationName
		}
		return lines[i].ProductName < lines[j].ProductName
	})

	reorder, err := uc.reorder.ReorderList(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: reposición: %w", err)
	}
	return &StockReport{GeneratedAt: uc.now(), Lines: lines, Reorder: reorder}, nil
}

// DownloadStockPDF genera el PDF y su nombre de archivo.
func (uc *StockReportUseCase) DownloadStockPDF(ctx context.Context) ([]byte, string, error) {
	rep, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStockReport(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("stock_%s.pdf", rep.GeneratedAt.Format("20060102_1504")), nil
}
