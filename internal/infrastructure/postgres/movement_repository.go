package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos de stock sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, idempotency_key, kind, product_id, location_id, delta, balance_after, reference, created_by, created_at`

// Claim inserta el movimiento; si la clave de idempotencia ya existe devuelve false sin error.
// ON CONFLICT DO NOTHING espera a la transacción concurrente que tenga la misma clave.
func (r *MovementRepo) Claim(ctx context.Context, m *entity.StockMovement) (bool, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (idempotency_key) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.IdempotencyKey, string(m.Kind), m.ProductID, m.LocationID,
		m.Delta, m.BalanceAfter, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("claim movement: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// SetBalance registra la cantidad resultante tras aplicar el delta.
func (r *MovementRepo) SetBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_movements SET balance_after = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("set movement balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByKey devuelve el movimiento de una clave o nil si no existe.
func (r *MovementRepo) GetByKey(ctx context.Context, key string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE idempotency_key = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve los movimientos más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
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
	query := `SELECT ` + movementColumns + ` FROM stock_movements`
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
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m    entity.StockMovement
		kind string
	)
	if err := row.Scan(
		&m.ID, &m.IdempotencyKey, &kind, &m.ProductID, &m.LocationID,
		&m.Delta, &m.BalanceAfter, &m.Reference, &m.CreatedBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}
