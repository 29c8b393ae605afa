package postgres

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Ante fallos transitorios repite la transacción completa con backoff exponencial.
type TxRunner struct {
	pool   *pgxpool.Pool
	policy RetryPolicy
	log    *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, policy RetryPolicy, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{pool: pool, policy: policy, log: log}
}

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Stock:       NewStockRepository(q),
		Movements:   NewMovementRepository(q),
		Products:    NewProductRepository(q),
		Locations:   NewLocationRepository(q),
		Batches:     NewBatchRepository(q),
		Transfers:   NewTransferRepository(q),
		Sales:       NewSaleRepository(q),
		Discounts:   NewDiscountSettingsRepository(q),
		Ingredients: NewIngredientRepository(q),
		Adjustments: NewAdjustmentRepository(q),
		History:     NewHistoryRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de dominio no se reintentan; un fallo transitorio que persiste tras los
// reintentos se devuelve envuelto en domain.ErrStorage.
func (r *TxRunner) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("transacción con fallo transitorio, reintentando")
		return err
	}
	err := backoff.Retry(op, r.policy.backOff(ctx))
	if err != nil && IsTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(r inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
