package inventory_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Engine
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_ClaveRepetidaEsNoOp(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	store := f.systemLocation(t, entity.LocationMainStore)
	ev := inventory.Event{
		Kind:       entity.MovementManualAdjustment,
		Key:        "adjustment:fijo",
		ProductID:  p.ID,
		LocationID: store.ID,
		Delta:      dec(10),
	}

	var first, second *appinv.MutationResult
	require.NoError(t, f.ledger.Run(f.ctx, func(_ appinv.Repos, m appinv.Mutator) error {
		var err error
		first, err = m.Mutate(f.ctx, ev)
		return err
	}))
	require.NoError(t, f.ledger.Run(f.ctx, func(_ appinv.Repos, m appinv.Mutator) error {
		var err error
		second, err = m.Mutate(f.ctx, ev)
		return err
	}))

	assert.True(t, first.Applied)
	assert.False(t, second.Applied, "la segunda aplicación no debe mover stock")
	assert.Equal(t, "10", second.Quantity.String())
	assert.Equal(t, "10", f.qty(t, p.ID, store.ID).String())

	movs, err := f.repos.Movements.List(f.ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	assert.Equal(t, "10", movs[0].BalanceAfter.String())
}

func TestEngine_EntidadDesconocidaNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	err := f.ledger.Run(f.ctx, func(_ appinv.Repos, m appinv.Mutator) error {
		_, err := m.Mutate(f.ctx, inventory.Event{
			Kind:       entity.MovementProductionCredit,
			Key:        "production:x:completed",
			ProductID:  p.ID,
			LocationID: uuid.New().String(),
			Delta:      dec(5),
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movs, err := f.repos.Movements.List(f.ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestEngine_PisoEnCero(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	store := f.systemLocation(t, entity.LocationMainStore)
	f.seed(t, p.ID, store.ID, 5)

	_, err := f.stock.AdjustProductStock(f.ctx, "tester", dto.AdjustProductStockRequest{
		ProductID: p.ID,
		Location:  store.Name,
		Delta:     dec(-20),
		Reason:    "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", f.qty(t, p.ID, store.ID).String())
}

func TestEngine_DebitoDeTrasladoEstricto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	store := f.systemLocation(t, entity.LocationMainStore)
	f.seed(t, p.ID, store.ID, 3)

	err := f.ledger.Run(f.ctx, func(_ appinv.Repos, m appinv.Mutator) error {
		_, err := m.Mutate(f.ctx, inventory.Event{
			Kind:       entity.MovementTransferDebit,
			Key:        inventory.TransferDebitKey("t1"),
			ProductID:  p.ID,
			LocationID: store.ID,
			Delta:      dec(-5),
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "3", f.qty(t, p.ID, store.ID).String())
}

// ──────────────────────────────────────────────────────────────────────────────
// StockLedger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_InvalidaCacheSoloTrasCommit(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	store := f.systemLocation(t, entity.LocationMainStore)
	key := appinv.StockKey{ProductID: p.ID, LocationID: store.ID}

	boom := errors.New("boom")
	err := f.ledger.Run(f.ctx, func(_ appinv.Repos, m appinv.Mutator) error {
		if _, err := m.Mutate(f.ctx, inventory.Event{
			Kind: entity.MovementManualAdjustment, Key: "adjustment:a", ProductID: p.ID, LocationID: store.ID, Delta: dec(1),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, f.cache.invalidated, "un rollback no invalida")
	assert.Equal(t, "0", f.qty(t, p.ID, store.ID).String(), "el rollback descarta el delta")

	f.seed(t, p.ID, store.ID, 4)
	assert.Contains(t, f.cache.invalidated, key)
	assert.Equal(t, "4", f.qty(t, p.ID, store.ID).String())
}

func TestGetStock_ProductoOUbicacionDesconocidos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	_, err := f.stock.GetStock(f.ctx, uuid.New().String(), entity.LocationMainStore)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.stock.GetStock(f.ctx, p.ID, "Bodega Fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err := f.stock.GetStock(f.ctx, p.ID, "main store")
	require.NoError(t, err)
	assert.True(t, res.Quantity.IsZero(), "sin entrada la cantidad es 0")
}

func TestGetStock_LlenaLaCache(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	loc := f.location(t, "Store 1")
	f.seed(t, p.ID, loc.ID, 45)
	key := appinv.StockKey{ProductID: p.ID, LocationID: loc.ID}

	assert.Equal(t, "45", f.qty(t, p.ID, loc.ID).String())
	cached, ok := f.cache.cached(key)
	require.True(t, ok)
	assert.Equal(t, "45", cached.String())
}

func TestGetStock_CommitEntreLecturaYCacheNoDejaValorViejo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	loc := f.location(t, "Store 1")
	f.seed(t, p.ID, loc.ID, 45)
	key := appinv.StockKey{ProductID: p.ID, LocationID: loc.ID}

	// La venta se confirma después de que GetStock leyó 45 del store y antes de escribir la caché.
	f.cache.beforeSet = func() {
		_, err := f.sales.Record(f.ctx, "cajero", saleReq("Store 1",
			dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(30), UnitPrice: dec(12)}))
		require.NoError(t, err)
	}

	assert.Equal(t, "45", f.qty(t, p.ID, loc.ID).String(), "la lectura es anterior a la venta")
	_, ok := f.cache.cached(key)
	assert.False(t, ok, "el valor leído antes de la invalidación no se guarda")

	assert.Equal(t, "15", f.qty(t, p.ID, loc.ID).String())
	assert.Equal(t, "15", f.qty(t, p.ID, loc.ID).String(), "la segunda lectura sale de la caché")
}

func TestAdjustProductStock_ConClaveSeAplicaUnaVez(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	req := dto.AdjustProductStockRequest{
		ProductID:      p.ID,
		Location:       entity.LocationMainStore,
		Delta:          dec(7),
		Reason:         "conteo físico",
		IdempotencyKey: "conteo-2026-10-01",
	}
	first, err := f.stock.AdjustProductStock(f.ctx, "tester", req)
	require.NoError(t, err)
	second, err := f.stock.AdjustProductStock(f.ctx, "tester", req)
	require.NoError(t, err)

	assert.True(t, first.Applied)
	assert.False(t, second.Applied)
	assert.Equal(t, "7", second.Quantity.String())
}

func TestAdjustProductStock_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	_, err := f.stock.AdjustProductStock(f.ctx, "tester", dto.AdjustProductStockRequest{
		ProductID: p.ID, Location: entity.LocationMainStore, Delta: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "motivo requerido")

	_, err = f.stock.AdjustProductStock(f.ctx, "tester", dto.AdjustProductStockRequest{
		ProductID: p.ID, Location: entity.LocationMainStore, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestVentasConcurrentes_NoPierdenDescuentos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	store := f.systemLocation(t, entity.LocationMainStore)
	f.seed(t, p.ID, store.ID, 100)

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.Record(f.ctx, "cajero", dto.RecordSaleRequest{
				Location:      store.ID,
				Items:         []dto.SaleItemRequest{{ProductID: p.ID, Quantity: dec(2), UnitPrice: dec(10)}},
				PaymentMethod: "cash",
				TransactionID: uuid.New().String(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, "20", f.qty(t, p.ID, store.ID).String())
}
