package repository

import (
	"context"
	"time"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// SaleFilter filtros opcionales para listar ventas.
type SaleFilter struct {
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// SaleRepository define el puerto de persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
