package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// MutationResult resultado de aplicar (o no) un evento.
type MutationResult struct {
	Key        string
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal // cantidad actual tras el evento
	Applied    bool            // false si la clave ya había sido aplicada
}

// Engine es el único punto que escribe cantidades en el Quantity Store.
// Valida el evento, verifica producto y ubicación, reclama la clave de idempotencia
// y aplica el delta de forma atómica, todo con los repositorios de la transacción del caller.
type Engine struct {
	now func() time.Time
}

// NewEngine construye el motor de mutaciones.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Mutate aplica ev usando los repositorios r (normalmente atados a una tx).
// Una clave ya aplicada devuelve Applied=false con la cantidad actual, sin error.
func (e *Engine) Mutate(ctx context.Context, r Repos, ev inventory.Event) (*MutationResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	product, err := r.Products.GetByID(ctx, ev.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, ev.ProductID)
	}
	location, err := r.Locations.GetByID(ctx, ev.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, ev.LocationID)
	}

	result := &MutationResult{Key: ev.Key, ProductID: ev.ProductID, LocationID: ev.LocationID}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		IdempotencyKey: ev.Key,
		Kind:           ev.Kind,
		ProductID:      ev.ProductID,
		LocationID:     ev.LocationID,
		Delta:          ev.Delta,
		Reference:      ev.Reference,
		CreatedBy:      ev.CreatedBy,
		CreatedAt:      e.now(),
	}
	claimed, err := r.Movements.Claim(ctx, mov)
	if err != nil {
		return nil, err
	}
	if !claimed {
		current, err := r.Stock.Get(ctx, ev.ProductID, ev.LocationID)
		if err != nil {
			return nil, err
		}
		result.Quantity = current.Quantity
		return result, nil
	}

	var qty decimal.Decimal
	if ev.Strict() {
		qty, err = r.Stock.ApplyDeltaStrict(ctx, ev.ProductID, ev.LocationID, ev.Delta)
	} else {
		qty, err = r.Stock.ApplyDelta(ctx, ev.ProductID, ev.LocationID, ev.Delta)
	}
	if err != nil {
		return nil, err
	}
	if err := r.Movements.SetBalance(ctx, mov.ID, qty); err != nil {
		return nil, err
	}

	result.Quantity = qty
	result.Applied = true
	return result, nil
}
