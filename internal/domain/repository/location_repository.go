package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// LocationRepository define el puerto del registro de ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetByNameKey busca por nombre normalizado (ver entity.LocationNameKey).
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
	Delete(ctx context.Context, id string) error
}
