package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IngredientRepository define el puerto de persistencia de ingredientes.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	GetByCode(ctx context.Context, code string) (*entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// ApplyStockDelta suma delta al stock con piso en cero en una sola operación atómica
	// y devuelve el stock anterior y el nuevo.
	ApplyStockDelta(ctx context.Context, id string, delta decimal.Decimal) (previous, current decimal.Decimal, err error)
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	// ListBelowReorderPoint devuelve los ingredientes con stock <= punto de reorden.
	ListBelowReorderPoint(ctx context.Context) ([]*entity.Ingredient, error)
}

// StockAdjustmentRepository registro de ajustes de ingredientes (solo inserción).
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	List(ctx context.Context, ingredientID string, limit int) ([]*entity.StockAdjustment, error)
}
