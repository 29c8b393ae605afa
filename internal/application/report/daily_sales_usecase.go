package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

const dailyDateLayout = "2006-01-02"

var dailyCSVHeader = []string{
	"Transaction ID", "Date", "Time", "Cashier", "Customer", "Store", "Items Count",
	"Subtotal", "Wholesale Discount", "Global Discount", "Tax", "Total", "Payment Method", "Sales Type",
}

// DailySalesReport ventas de un día, en orden cronológico.
type DailySalesReport struct {
	Date      string
	Sales     []*entity.Sale
	Locations map[string]string // id → nombre
}

// DailySalesUseCase exporta las ventas del día en CSV.
type DailySalesUseCase struct {
	repos appinv.Repos
	now   func() time.Time
}

// NewDailySalesUseCase construye el caso de uso.
func NewDailySalesUseCase(repos appinv.Repos) *DailySalesUseCase {
	return &DailySalesUseCase{repos: repos, now: time.Now}
}

// Build lista las ventas de date (YYYY-MM-DD, vacío = hoy en la zona del servidor).
// locationRef vacío incluye todas las ubicaciones.
func (uc *DailySalesUseCase) Build(ctx context.Context, date, locationRef string) (*DailySalesReport, error) {
	now := uc.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date = strings.TrimSpace(date); date != "" {
		parsed, err := time.ParseInLocation(dailyDateLayout, date, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		day = parsed
	}
	end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)

	filter := repository.SaleFilter{From: &day, To: &end}
	if locationRef != "" {
		loc, err := appinv.ResolveLocation(ctx, uc.repos.Locations, locationRef)
		if err != nil {
			return nil, err
		}
		filter.LocationID = loc.ID
	}
	sales, err := uc.repos.Sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: ventas: %w", err)
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].CreatedAt.Before(sales[j].CreatedAt) })

	locations, err := uc.repos.Locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: ubicaciones: %w", err)
	}
	names := make(map[string]string, len(locations))
	for _, l := range locations {
		names[l.ID] = l.Name
	}
	return &DailySalesReport{Date: day.Format(dailyDateLayout), Sales: sales, Locations: names}, nil
}

// DownloadDailyCSV genera el CSV y su nombre de archivo.
func (uc *DailySalesUseCase) DownloadDailyCSV(ctx context.Context, date, locationRef string) ([]byte, string, error) {
	rep, err := uc.Build(ctx, date, locationRef)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := WriteDailyCSV(&buf, rep); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "Daily-Report-" + rep.Date + ".csv", nil
}

// WriteDailyCSV escribe una fila por venta con montos a dos decimales.
func WriteDailyCSV(w io.Writer, rep *DailySalesReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyCSVHeader); err != nil {
		return fmt.Errorf("reporte diario: csv: %w", err)
	}
	for _, s := range rep.Sales {
		store, ok := rep.Locations[s.LocationID]
		if !ok {
			store = "Unknown"
		}
		salesType := s.SalesType
		if salesType == "" {
			salesType = entity.SalesTypeRetail
		}
		row := []string{
			s.TransactionID,
			s.CreatedAt.Format(dailyDateLayout),
			s.CreatedAt.Format("15:04:05"),
			orDefault(s.Cashier, "Unknown"),
			orDefault(s.Customer, "Walk-in"),
			store,
			strconv.Itoa(len(s.Items)),
			s.Subtotal.StringFixed(2),
			s.WholesaleDiscount.StringFixed(2),
			s.Discount.StringFixed(2),
			s.Tax.StringFixed(2),
			s.Total.StringFixed(2),
			s.PaymentMethod,
			salesType,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("reporte diario: csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
