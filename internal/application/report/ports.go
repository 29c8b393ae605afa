package report

import (
	"context"
	"time"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// StockLine fila del reporte de stock.
type StockLine struct {
	LocationName string
	SKU          string
	ProductName  string
	Unit         string
	Quantity     decimal.Decimal
}

// StockReport datos ya resueltos para el generador.
type StockReport struct {
	GeneratedAt time.Time
	Lines       []StockLine
	Reorder     []dto.ReorderSuggestionDTO
}

// StockReportGenerator genera la representación PDF del reporte.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}
