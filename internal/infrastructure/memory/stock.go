package memory

import (
	"context"
	"sort"
	"time"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
)

// StockRepo Quantity Store en memoria. Cada ApplyDelta ocurre bajo el lock del Store.
type StockRepo struct{ v *view }

func (r *StockRepo) Get(_ context.Context, productID, locationID string) (*entity.StockEntry, error) {
	out := &entity.StockEntry{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
	r.v.read(func(d *data) {
		if s, ok := d.stock[stockKey{productID, locationID}]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *StockRepo) ApplyDelta(_ context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var q decimal.Decimal
	err := r.v.write("stock.apply", func(d *data) error {
		k := stockKey{productID, locationID}
		s := d.stock[k]
		s.ProductID, s.LocationID = productID, locationID
		s.Quantity = inventory.ClampAtZero(s.Quantity.Add(delta))
		s.UpdatedAt = time.Now()
		d.stock[k] = s
		q = s.Quantity
		return nil
	})
	return q, err
}

func (r *StockRepo) ApplyDeltaStrict(_ context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var q decimal.Decimal
	err := r.v.write("stock.apply", func(d *data) error {
		k := stockKey{productID, locationID}
		s := d.stock[k]
		next := s.Quantity.Add(delta)
		if next.IsNegative() {
			return domain.ErrInsufficientStock
		}
		s.ProductID, s.LocationID = productID, locationID
		s.Quantity = next
		s.UpdatedAt = time.Now()
		d.stock[k] = s
		q = next
		return nil
	})
	return q, err
}

func (r *StockRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	r.v.read(func(d *data) {
		for k, s := range d.stock {
			if f.ProductID != "" && k.productID != f.ProductID {
				continue
			}
			if f.LocationID != "" && k.locationID != f.LocationID {
				continue
			}
			s := s
			out = append(out, &s)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationID != out[j].LocationID {
			return out[i].LocationID < out[j].LocationID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ v *view }

func (r *MovementRepo) Claim(_ context.Context, m *entity.StockMovement) (bool, error) {
	claimed := false
	err := r.v.write("movements.claim", func(d *data) error {
		if _, ok := d.movementKey[m.IdempotencyKey]; ok {
			return nil
		}
		d.movements = append(d.movements, *m)
		d.movementKey[m.IdempotencyKey] = len(d.movements) - 1
		claimed = true
		return nil
	})
	return claimed, err
}

func (r *MovementRepo) SetBalance(_ context.Context, id string, balance decimal.Decimal) error {
	return r.v.write("movements.balance", func(d *data) error {
		for i := len(d.movements) - 1; i >= 0; i-- {
			if d.movements[i].ID == id {
				d.movements[i].BalanceAfter = balance
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *MovementRepo) GetByKey(_ context.Context, key string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	r.v.read(func(d *data) {
		if i, ok := d.movementKey[key]; ok {
			m := d.movements[i]
			out = &m
		}
	})
	return out, nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	r.v.read(func(d *data) {
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.LocationID != "" && m.LocationID != f.LocationID {
				continue
			}
			out = append(out, &m)
			if f.Limit > 0 && len(out) == f.Limit {
				return
			}
		}
	})
	return out, nil
}
