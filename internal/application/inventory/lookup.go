package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

// ResolveLocation resuelve una referencia de ubicación (id o nombre) contra el registro.
// Los traslados y ventas pueden nombrar la ubicación; el Quantity Store siempre usa el id.
func ResolveLocation(ctx context.Context, repo repository.LocationRepository, ref string) (*entity.Location, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(ref); err == nil {
		loc, err := repo.GetByID(ctx, ref)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			return loc, nil
		}
	}
	loc, err := repo.GetByNameKey(ctx, entity.LocationNameKey(ref))
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, ref)
	}
	return loc, nil
}

// RequireProduct carga un producto o devuelve ErrNotFound.
func RequireProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}

// RecordHistory agrega una entrada al historial de auditoría. details se serializa a JSON.
func RecordHistory(ctx context.Context, repo repository.HistoryRepository, action, entityName, entityID, userID string, details any) error {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("historial: %w", err)
		}
		raw = b
	}
	return repo.Create(ctx, &entity.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Details:   raw,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
}
