package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo Quantity Store sobre PostgreSQL (usable con pool o tx).
// Los deltas se aplican con una sola sentencia; nunca leer-modificar-escribir.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación; cero si no hay fila.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockEntry, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta crea la fila en cero si no existe, suma delta y limita el resultado a >= 0.
func (r *StockRepo) ApplyDelta(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, GREATEST($3::numeric, 0), now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = GREATEST(stock.quantity + $3::numeric, 0), updated_at = now()
		RETURNING quantity`
	var q decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, locationID, delta).Scan(&q); err != nil {
		return decimal.Zero, fmt.Errorf("apply stock delta: %w", err)
	}
	return q, nil
}

// ApplyDeltaStrict aplica delta solo si el resultado queda >= 0.
func (r *StockRepo) ApplyDeltaStrict(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	if !delta.IsNegative() {
		return r.ApplyDelta(ctx, productID, locationID, delta)
	}
	query := `
		UPDATE stock SET quantity = quantity + $3::numeric, updated_at = now()
		WHERE product_id = $1 AND location_id = $2 AND quantity + $3::numeric >= 0
		RETURNING quantity`
	var q decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, locationID, delta).Scan(&q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("apply strict stock delta: %w", err)
	}
	return q, nil
}

// List devuelve las entradas filtradas por producto y/o ubicación.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		where = append(where, fmt.Sprintf("location_id = $%d", len(args)))
	}
	query := `SELECT product_id, location_id, quantity, updated_at FROM stock`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY location_id, product_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
