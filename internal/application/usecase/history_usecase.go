package usecase

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// HistoryUseCase consulta el historial de auditoría.
type HistoryUseCase struct {
	repo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List devuelve las entradas más recientes; entity y entityID filtran opcionalmente.
func (uc *HistoryUseCase) List(ctx context.Context, entity, entityID string, limit int) (*dto.HistoryListResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	list, err := uc.repo.List(ctx, repository.HistoryFilter{Entity: entity, EntityID: entityID, Limit: limit})
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.HistoryEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Details:   e.Details,
			UserID:    e.UserID,
			CreatedAt: e.CreatedAt,
		})
	}
	return &dto.HistoryListResponse{Items: items}, nil
}
