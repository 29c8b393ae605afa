package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// TransferFilter filtros opcionales para listar traslados.
type TransferFilter struct {
	Status     entity.TransferStatus
	LocationID string // origen o destino
}

// TransferRepository define el puerto de persistencia de traslados.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	Update(ctx context.Context, transfer *entity.Transfer) error
	List(ctx context.Context, filter TransferFilter) ([]*entity.Transfer, error)
	// CountActiveByLocation cuenta traslados Pending/In Transit que referencian la ubicación.
	CountActiveByLocation(ctx context.Context, locationID string) (int, error)
}
