package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre ventas para el tablero.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics ingresos, unidades y número de ventas del período.
// locationID vacío agrega todas las ubicaciones.
func (r *AnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	locationID string,
	startDate, endDate time.Time,
) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total), 0)                                            AS revenue,
	    COALESCE((SELECT SUM(i.quantity)
	              FROM sale_items i JOIN sales s2 ON s2.id = i.sale_id
	              WHERE s2.created_at BETWEEN $2 AND $3
	                AND ($1 = '' OR s2.location_id::text = $1)), 0)          AS units_sold,
	    COUNT(*)                                                             AS sale_count
	FROM sales s
	WHERE s.created_at BETWEEN $2 AND $3
	  AND ($1 = '' OR s.location_id::text = $1)`

	var m repository.SalesMetrics
	err := r.pool.QueryRow(ctx, query, locationID, startDate, endDate).Scan(&m.Revenue, &m.UnitsSold, &m.SaleCount)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return m, nil
}

// GetTopProducts ranking de productos por ingreso de línea en el período.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	locationID string,
	startDate, endDate time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id::text          AS product_id,
	    p.sku               AS sku,
	    p.name              AS product_name,
	    SUM(i.quantity)     AS units_sold,
	    SUM(i.line_total)   AS revenue
	FROM sale_items i
	JOIN sales    s ON s.id = i.sale_id
	JOIN products p ON p.id = i.product_id
	WHERE s.created_at BETWEEN $2 AND $3
	  AND ($1 = '' OR s.location_id::text = $1)
	GROUP BY p.id, p.sku, p.name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, locationID, startDate, endDate, clampLimit(limit, 5, 50))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPaymentBreakdown número de ventas y monto cobrado por medio de pago, de mayor a menor monto.
func (r *AnalyticsRepo) GetPaymentBreakdown(
	ctx context.Context,
	locationID string,
	startDate, endDate time.Time,
) ([]repository.PaymentMethodResult, error) {
	const query = `
	SELECT
	    s.payment_method            AS method,
	    COUNT(*)                    AS sale_count,
	    COALESCE(SUM(s.total), 0)   AS amount
	FROM sales s
	WHERE s.created_at BETWEEN $2 AND $3
	  AND ($1 = '' OR s.location_id::text = $1)
	GROUP BY s.payment_method
	ORDER BY amount DESC, method`

	rows, err := r.pool.Query(ctx, query, locationID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodResult
	for rows.Next() {
		var row repository.PaymentMethodResult
		if err := rows.Scan(&row.Method, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("analytics.GetPaymentBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
