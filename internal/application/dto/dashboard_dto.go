package dto

import "github.com/shopspring/decimal"

// SalesSummaryDTO respuesta de GET /api/reports/sales-summary.
// KPIs del día y del mes en curso, más el Top-5 de productos del mes.
type SalesSummaryDTO struct {
	LocationID string `json:"location_id,omitempty"` // vacío = todas las ubicaciones

	TodaySales decimal.Decimal `json:"today_sales"`
	TodayUnits decimal.Decimal `json:"today_units"`
	TodayCount int             `json:"today_count"`

	MonthlySales decimal.Decimal `json:"monthly_sales"`
	MonthlyUnits decimal.Decimal `json:"monthly_units"`
	MonthlyCount int             `json:"monthly_count"`

	// Ticket promedio del mes (ventas / número de ventas)
	AverageTicket decimal.Decimal `json:"average_ticket"`

	TopProducts []TopProductDTO `json:"top_products"`

	// Ventas del día por medio de pago, de mayor a menor monto
	TodayPayments []PaymentBreakdownDTO `json:"today_payments"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	SharePct     decimal.Decimal `json:"share_pct"` // porcentaje del ingreso del mes
}

// PaymentBreakdownDTO ventas de un medio de pago.
type PaymentBreakdownDTO struct {
	Method string          `json:"payment_method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}
