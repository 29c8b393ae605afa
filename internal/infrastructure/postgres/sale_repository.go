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
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (sales + sale_items) sobre PostgreSQL. Create debe correr dentro de una tx.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, transaction_id, location_id, subtotal, discount, tax, total, payment_method, cashier, customer, sales_type, wholesale_discount, created_at`

// Create persiste la cabecera y sus líneas. transaction_id es único.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TransactionID, s.LocationID, s.Subtotal, s.Discount, s.Tax, s.Total,
		s.PaymentMethod, s.Cashier, s.Customer, s.SalesType, s.WholesaleDiscount, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (sale_id, line_no, product_id, quantity, unit_price, discount_pct, wholesale_discount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, i, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountPct, it.WholesaleDiscount, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByTransactionID obtiene una venta por su número de transacción.
func (r *SaleRepo) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE transaction_id = $1`, transactionID)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, arg any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas más recientes primero, filtradas por ubicación y rango de fechas.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		where []string
		args  []any
	)
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		where = append(where, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todas las ventas con una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, product_id, quantity, unit_price, discount_pct, wholesale_discount, line_total
		FROM sale_items WHERE sale_id = ANY($1::uuid[])
		ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			saleID string
			it     entity.SaleItem
		)
		if err := rows.Scan(&saleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.DiscountPct, &it.WholesaleDiscount, &it.LineTotal); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[saleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(
		&s.ID, &s.TransactionID, &s.LocationID, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
		&s.PaymentMethod, &s.Cashier, &s.Customer, &s.SalesType, &s.WholesaleDiscount, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
