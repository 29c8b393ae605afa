package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID  string
	LocationID string
	Limit      int
}

// StockMovementRepository libro de movimientos con clave de idempotencia única.
type StockMovementRepository interface {
	// Claim inserta el movimiento si su IdempotencyKey no existe.
	// Devuelve false (sin error) cuando la clave ya fue aplicada.
	Claim(ctx context.Context, movement *entity.StockMovement) (bool, error)
	SetBalance(ctx context.Context, id string, balance decimal.Decimal) error
	GetByKey(ctx context.Context, key string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
