package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// HistoryFilter filtros del historial.
type HistoryFilter struct {
	Entity   string
	EntityID string
	Limit    int
}

// HistoryRepository historial de auditoría (solo inserción).
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.HistoryEntry) error
	List(ctx context.Context, filter HistoryFilter) ([]*entity.HistoryEntry, error)
}
