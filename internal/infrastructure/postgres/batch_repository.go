package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductionBatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes de producción sobre PostgreSQL. Los ingredientes se guardan como JSONB.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, facility_id, quantity, batch_number, operator, status, ingredients, notes, revision, completed_at, created_at, updated_at`

type batchIngredientJSON struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

func encodeIngredients(items []entity.BatchIngredient) ([]byte, error) {
	rows := make([]batchIngredientJSON, 0, len(items))
	for _, it := range items {
		rows = append(rows, batchIngredientJSON{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}
	return json.Marshal(rows)
}

// Create persiste un lote. batch_number es único.
func (r *BatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	ingredients, err := encodeIngredients(b.Ingredients)
	if err != nil {
		return fmt.Errorf("encode batch ingredients: %w", err)
	}
	query := `INSERT INTO production_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		b.ID, b.ProductID, b.FacilityID, b.Quantity, b.BatchNumber, b.Operator, string(b.Status),
		ingredients, b.Notes, b.Revision, b.CompletedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE id = $1`, id)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE id = $1 FOR UPDATE`, id)
}

// GetByBatchNumber obtiene un lote por su número.
func (r *BatchRepo) GetByBatchNumber(ctx context.Context, batchNumber string) (*entity.ProductionBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE batch_number = $1`, batchNumber)
}

func (r *BatchRepo) getOne(ctx context.Context, query string, arg any) (*entity.ProductionBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update reemplaza los campos mutables del lote.
func (r *BatchRepo) Update(ctx context.Context, b *entity.ProductionBatch) error {
	ingredients, err := encodeIngredients(b.Ingredients)
	if err != nil {
		return fmt.Errorf("encode batch ingredients: %w", err)
	}
	query := `
		UPDATE production_batches SET quantity = $2, operator = $3, status = $4, ingredients = $5,
			notes = $6, revision = $7, completed_at = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.Quantity, b.Operator, string(b.Status), ingredients,
		b.Notes, b.Revision, b.CompletedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el lote.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_batches WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// List lotes más recientes primero, filtrados por estado y/o producto.
func (r *BatchRepo) List(ctx context.Context, filter repository.BatchFilter) ([]*entity.ProductionBatch, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	query := `SELECT ` + batchColumns + ` FROM production_batches`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var (
		b           entity.ProductionBatch
		status      string
		ingredients []byte
	)
	if err := row.Scan(
		&b.ID, &b.ProductID, &b.FacilityID, &b.Quantity, &b.BatchNumber, &b.Operator, &status,
		&ingredients, &b.Notes, &b.Revision, &b.CompletedAt, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Status = entity.BatchStatus(status)
	var items []batchIngredientJSON
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &items); err != nil {
			return nil, fmt.Errorf("decode batch ingredients: %w", err)
		}
	}
	for _, it := range items {
		b.Ingredients = append(b.Ingredients, entity.BatchIngredient{IngredientID: it.IngredientID, Quantity: it.Quantity})
	}
	return &b, nil
}
