// Package analytics contiene los casos de uso de reportes de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	locations     repository.LocationRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, locations repository.LocationRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, locations: locations, now: time.Now}
}

// GetSummary construye el SalesSummaryDTO. locationRef vacío agrega todas las ubicaciones.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesMetrics(hoy)        → TodaySales, TodayUnits, TodayCount
//  2. GetSalesMetrics(mes)        → MonthlySales, MonthlyUnits, MonthlyCount
//  3. GetTopProducts(mes, top 5)  → TopProducts
//  4. GetPaymentBreakdown(hoy)    → TodayPayments
func (uc *DashboardUseCase) GetSummary(ctx context.Context, locationRef string) (*dto.SalesSummaryDTO, error) {
	locationID := ""
	if locationRef != "" {
		loc, err := appinv.ResolveLocation(ctx, uc.locations, locationRef)
		if err != nil {
			return nil, err
		}
		locationID = loc.ID
	}
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	// ── Goroutines para paralelizar las 4 consultas ───────────────────────────
	type metricsResult struct {
		m   repository.SalesMetrics
		err error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type paymentsResult struct {
		rows []repository.PaymentMethodResult
		err  error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, locationID, todayStart, todayEnd)
		todayCh <- metricsResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, locationID, monthStart, monthEnd)
		monthCh <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, locationID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetPaymentBreakdown(ctx, locationID, todayStart, todayEnd)
		paymentsCh <- paymentsResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	payments := <-paymentsCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: medios de pago: %w", payments.err)
	}

	avgTicket := decimal.Zero
	if month.m.SaleCount > 0 {
		avgTicket = month.m.Revenue.Div(decimal.NewFromInt(int64(month.m.SaleCount))).Round(2)
	}

	products := make([]dto.TopProductDTO, 0, len(top.rows))
	for _, r := range top.rows {
		share := decimal.Zero
		if month.m.Revenue.IsPositive() {
			share = r.Revenue.Div(month.m.Revenue).Mul(hundred).Round(2)
		}
		products = append(products, dto.TopProductDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			QuantitySold: r.UnitsSold,
			TotalRevenue: r.Revenue.Round(2),
			SharePct:     share,
		})
	}

	byMethod := make([]dto.PaymentBreakdownDTO, 0, len(payments.rows))
	for _, r := range payments.rows {
		byMethod = append(byMethod, dto.PaymentBreakdownDTO{Method: r.Method, Count: r.Count, Amount: r.Amount.Round(2)})
	}

	return &dto.SalesSummaryDTO{
		LocationID:    locationID,
		TodaySales:    today.m.Revenue.Round(2),
		TodayUnits:    today.m.UnitsSold,
		TodayCount:    today.m.SaleCount,
		MonthlySales:  month.m.Revenue.Round(2),
		MonthlyUnits:  month.m.UnitsSold,
		MonthlyCount:  month.m.SaleCount,
		AverageTicket: avgTicket,
		TopProducts:   products,
		TodayPayments: byMethod,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
