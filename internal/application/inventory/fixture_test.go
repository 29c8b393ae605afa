package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/ingredients"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/application/usecase"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/infrastructure/memory"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

// spyCache registra las claves invalidadas y lleva una generación por clave como Redis.
type spyCache struct {
	mu          sync.Mutex
	values      map[appinv.StockKey]decimal.Decimal
	generations map[appinv.StockKey]int64
	invalidated []appinv.StockKey
	// beforeSet se ejecuta fuera del lock antes de cada Set.
	beforeSet func()
}

func newSpyCache() *spyCache {
	return &spyCache{
		values:      map[appinv.StockKey]decimal.Decimal{},
		generations: map[appinv.StockKey]int64{},
	}
}

func (c *spyCache) Get(_ context.Context, k appinv.StockKey) (appinv.CachedStock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[k]
	return appinv.CachedStock{Quantity: v, Hit: ok, Generation: c.generations[k]}, nil
}

func (c *spyCache) Set(_ context.Context, k appinv.StockKey, q decimal.Decimal, generation int64) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[k] != generation {
		return nil
	}
	c.values[k] = q
	return nil
}

func (c *spyCache) Invalidate(_ context.Context, keys ...appinv.StockKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.generations[k]++
	}
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

func (c *spyCache) cached(k appinv.StockKey) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[k]
	return v, ok
}

type fixture struct {
	ctx         context.Context
	store       *memory.Store
	repos       appinv.Repos
	cache       *spyCache
	ledger      *appinv.StockLedger
	stock       *appinv.StockUseCase
	production  *appinv.ProductionUseCase
	transfers   *appinv.TransferUseCase
	sales       *appinv.SaleUseCase
	ingredients *ingredients.UseCase
	locations   *usecase.LocationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	cache := newSpyCache()
	ledger := appinv.NewStockLedger(store, cache, log)
	ing := ingredients.NewUseCase(repos, store)
	locs := usecase.NewLocationUseCase(repos, store, log)
	require.NoError(t, locs.EnsureSystemLocations(ctx))

	return &fixture{
		ctx:         ctx,
		store:       store,
		repos:       repos,
		cache:       cache,
		ledger:      ledger,
		stock:       appinv.NewStockUseCase(repos, ledger, cache, log),
		production:  appinv.NewProductionUseCase(repos, ledger, ing, log),
		transfers:   appinv.NewTransferUseCase(repos, ledger),
		sales:       appinv.NewSaleUseCase(repos, ledger),
		ingredients: ing,
		locations:   locs,
	}
}

func (f *fixture) product(t *testing.T, sku string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      "Producto " + sku,
		Unit:      "kg",
		Price:     decimal.NewFromInt(10),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.repos.Products.Create(f.ctx, p))
	return p
}

func (f *fixture) location(t *testing.T, name string) *dto.LocationResponse {
	t.Helper()
	loc, err := f.locations.Create(f.ctx, "tester", dto.CreateLocationRequest{Name: name})
	require.NoError(t, err)
	return loc
}

func (f *fixture) systemLocation(t *testing.T, name string) *entity.Location {
	t.Helper()
	loc, err := f.repos.Locations.GetByNameKey(f.ctx, entity.LocationNameKey(name))
	require.NoError(t, err)
	require.NotNil(t, loc)
	return loc
}

// seed deja qty unidades del producto en la ubicación vía ajuste manual.
func (f *fixture) seed(t *testing.T, productID, locationID string, qty int64) {
	t.Helper()
	_, err := f.stock.AdjustProductStock(f.ctx, "tester", dto.AdjustProductStockRequest{
		ProductID: productID,
		Location:  locationID,
		Delta:     decimal.NewFromInt(qty),
		Reason:    "carga inicial",
	})
	require.NoError(t, err)
}

func (f *fixture) qty(t *testing.T, productID, locationRef string) decimal.Decimal {
	t.Helper()
	res, err := f.stock.GetStock(f.ctx, productID, locationRef)
	require.NoError(t, err)
	return res.Quantity
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
