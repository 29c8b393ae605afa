package inventory

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

// Mutator aplica eventos dentro de la transacción en curso.
type Mutator interface {
	Mutate(ctx context.Context, ev inventory.Event) (*MutationResult, error)
}

// StockLedger combina TxRunner y Engine: los handlers de producción, traslados y ventas
// escriben su entidad y emiten eventos en la misma transacción; tras el commit se invalidan
// las lecturas en caché de las entradas tocadas.
type StockLedger struct {
	tx     TxRunner
	engine *Engine
	cache  StockCache
	log    *logger.Logger
}

// NewStockLedger construye el ledger. cache puede ser NoopCache{}.
func NewStockLedger(tx TxRunner, cache StockCache, log *logger.Logger) *StockLedger {
	if cache == nil {
		cache = NoopCache{}
	}
	return &StockLedger{tx: tx, engine: NewEngine(), cache: cache, log: log}
}

// Run ejecuta fn en una transacción con un Mutator atado a ella.
func (l *StockLedger) Run(ctx context.Context, fn func(r Repos, m Mutator) error) error {
	var touched []StockKey
	err := l.tx.Run(ctx, func(r Repos) error {
		m := &txMutator{engine: l.engine, repos: r}
		if err := fn(r, m); err != nil {
			return err
		}
		touched = m.touched
		return nil
	})
	if err != nil {
		return err
	}
	if len(touched) > 0 {
		if err := l.cache.Invalidate(ctx, touched...); err != nil {
			l.log.Warn().Err(err).Int("keys", len(touched)).Msg("no se pudo invalidar la caché de stock")
		}
	}
	return nil
}

type txMutator struct {
	engine  *Engine
	repos   Repos
	touched []StockKey
}

func (m *txMutator) Mutate(ctx context.Context, ev inventory.Event) (*MutationResult, error) {
	res, err := m.engine.Mutate(ctx, m.repos, ev)
	if err != nil {
		return nil, err
	}
	if res.Applied {
		m.touched = append(m.touched, StockKey{ProductID: res.ProductID, LocationID: res.LocationID})
	}
	return res, nil
}
