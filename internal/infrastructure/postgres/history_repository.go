package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial de auditoría sobre PostgreSQL.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create inserta una entrada; details vacío se guarda como objeto JSON vacío.
func (r *HistoryRepo) Create(ctx context.Context, e *entity.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	details := []byte(e.Details)
	if len(details) == 0 {
		details = []byte("{}")
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO history (id, action, entity, entity_id, details, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Action, e.Entity, e.EntityID, details, e.UserID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// List entradas más recientes primero, filtradas por entidad y/o id.
func (r *HistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, action, entity, entity_id, details, user_id, created_at
		FROM history
		WHERE ($1 = '' OR entity = $1) AND ($2 = '' OR entity_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, f.Entity, f.EntityID, clampLimit(f.Limit, 50, 200))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var list []*entity.HistoryEntry
	for rows.Next() {
		var (
			e       entity.HistoryEntry
			details []byte
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &details, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Details = details
		list = append(list, &e)
	}
	return list, rows.Err()
}
