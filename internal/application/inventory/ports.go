package inventory

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Repos agrupa los repositorios. Dentro de TxRunner.Run todos están atados a la misma transacción;
// fuera de ella (lecturas) operan sobre el pool.
type Repos struct {
	Stock       repository.StockRepository
	Movements   repository.StockMovementRepository
	Products    repository.ProductRepository
	Locations   repository.LocationRepository
	Batches     repository.ProductionBatchRepository
	Transfers   repository.TransferRepository
	Sales       repository.SaleRepository
	Discounts   repository.DiscountSettingsRepository
	Ingredients repository.IngredientRepository
	Adjustments repository.StockAdjustmentRepository
	History     repository.HistoryRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Una implementación puede reintentar fn
// completa ante fallos transitorios del almacenamiento, por lo que fn no debe tener efectos externos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// StockKey identifica una entrada del Quantity Store.
type StockKey struct {
	ProductID  string
	LocationID string
}

// CachedStock resultado de leer la caché. Generation es la versión de la clave observada en la
// lectura; Set la compara para no reescribir un valor leído antes de una invalidación.
type CachedStock struct {
	Quantity   decimal.Decimal
	Hit        bool
	Generation int64
}

// StockCache caché de lectura de cantidades. Se invalida después de cada commit.
// Invalidate borra el valor y avanza la generación de cada clave; Set solo escribe si la
// generación sigue siendo la leída por Get.
type StockCache interface {
	Get(ctx context.Context, key StockKey) (CachedStock, error)
	Set(ctx context.Context, key StockKey, quantity decimal.Decimal, generation int64) error
	Invalidate(ctx context.Context, keys ...StockKey) error
}

// NoopCache caché deshabilitada (sin Redis configurado).
type NoopCache struct{}

func (NoopCache) Get(context.Context, StockKey) (CachedStock, error)          { return CachedStock{}, nil }
func (NoopCache) Set(context.Context, StockKey, decimal.Decimal, int64) error { return nil }
func (NoopCache) Invalidate(context.Context, ...StockKey) error               { return nil }
