package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics totales de ventas de un período.
type SalesMetrics struct {
	Revenue   decimal.Decimal
	UnitsSold decimal.Decimal
	SaleCount int
}

// TopProductResult resultado crudo del ranking de productos por ingreso.
type TopProductResult struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
}

// PaymentMethodResult ventas agrupadas por medio de pago.
type PaymentMethodResult struct {
	Method string
	Count  int
	Amount decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre las ventas.
// locationID vacío agrega todas las ubicaciones.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, locationID string, startDate, endDate time.Time) (SalesMetrics, error)
	GetTopProducts(ctx context.Context, locationID string, startDate, endDate time.Time, limit int) ([]TopProductResult, error)
	GetPaymentBreakdown(ctx context.Context, locationID string, startDate, endDate time.Time) ([]PaymentMethodResult, error)
}
