package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockFilter filtros opcionales para listar stock.
type StockFilter struct {
	ProductID  string
	LocationID string
}

// StockRepository es el Quantity Store: (producto, ubicación) -> cantidad.
// Solo el motor de mutaciones escribe a través de ApplyDelta/ApplyDeltaStrict;
// ambas operaciones son atómicas en el almacenamiento (nunca leer-modificar-escribir).
type StockRepository interface {
	// Get devuelve la entrada o una entrada con cantidad cero si no existe.
	Get(ctx context.Context, productID, locationID string) (*entity.StockEntry, error)
	// ApplyDelta crea la entrada en cero si no existe, suma delta y limita el resultado a >= 0.
	ApplyDelta(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error)
	// ApplyDeltaStrict suma delta solo si el resultado queda >= 0; si no, domain.ErrInsufficientStock.
	ApplyDeltaStrict(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error)
	List(ctx context.Context, filter StockFilter) ([]*entity.StockEntry, error)
}
