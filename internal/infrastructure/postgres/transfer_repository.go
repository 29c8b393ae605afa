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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados entre ubicaciones sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, product_id, from_location_id, to_location_id, quantity, quantity_received, discrepancy,
	discrepancy_reason, status, requested_by, received_by, received_at, notes, created_at, updated_at`

// Create persiste un traslado.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.FromID, t.ToID, t.Quantity, t.QuantityReceived, t.Discrepancy,
		t.DiscrepancyReason, string(t.Status), t.RequestedBy, t.ReceivedBy, t.ReceivedAt, t.Notes,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetForUpdate obtiene el traslado y bloquea la fila hasta el fin de la tx.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepo) getOne(ctx context.Context, query string, arg any) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update guarda estado y datos de recepción.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE transfers SET quantity_received = $2, discrepancy = $3, discrepancy_reason = $4,
			status = $5, received_by = $6, received_at = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.QuantityReceived, t.Discrepancy, t.DiscrepancyReason,
		string(t.Status), t.ReceivedBy, t.ReceivedAt, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List traslados más recientes primero; LocationID filtra por origen o destino.
func (r *TransferRepo) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		where = append(where, fmt.Sprintf("(from_location_id = $%d OR to_location_id = $%d)", len(args), len(args)))
	}
	query := `SELECT ` + transferColumns + ` FROM transfers`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountActiveByLocation cuenta traslados Pending/In Transit que referencian la ubicación.
func (r *TransferRepo) CountActiveByLocation(ctx context.Context, locationID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM transfers
		WHERE status IN ($2, $3) AND (from_location_id = $1 OR to_location_id = $1)`
	var n int
	err := r.q.QueryRow(ctx, query, locationID,
		string(entity.TransferPending), string(entity.TransferInTransit),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active transfers: %w", err)
	}
	return n, nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var (
		t      entity.Transfer
		status string
	)
	if err := row.Scan(
		&t.ID, &t.ProductID, &t.FromID, &t.ToID, &t.Quantity, &t.QuantityReceived, &t.Discrepancy,
		&t.DiscrepancyReason, &status, &t.RequestedBy, &t.ReceivedBy, &t.ReceivedAt, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = entity.TransferStatus(status)
	return &t, nil
}
