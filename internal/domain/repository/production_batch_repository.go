package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// BatchFilter filtros opcionales para listar lotes.
type BatchFilter struct {
	Status    entity.BatchStatus
	ProductID string
}

// ProductionBatchRepository define el puerto de persistencia de lotes de producción.
type ProductionBatchRepository interface {
	Create(ctx context.Context, batch *entity.ProductionBatch) error
	GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea el lote hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error)
	GetByBatchNumber(ctx context.Context, batchNumber string) (*entity.ProductionBatch, error)
	Update(ctx context.Context, batch *entity.ProductionBatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter BatchFilter) ([]*entity.ProductionBatch, error)
}
