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
	_ repository.IngredientRepository      = (*IngredientRepo)(nil)
	_ repository.StockAdjustmentRepository = (*AdjustmentRepo)(nil)
	_ repository.HistoryRepository         = (*HistoryRepo)(nil)
)

// IngredientRepo ingredientes en memoria.
type IngredientRepo struct{ v *view }

func (r *IngredientRepo) Create(_ context.Context, in *entity.Ingredient) error {
	return r.v.write("ingredients.create", func(d *data) error {
		for _, x := range d.ingredients {
			if x.Code == in.Code {
				return domain.ErrDuplicate
			}
		}
		d.ingredients[in.ID] = *in
		return nil
	})
}

func (r *IngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.v.read(func(d *data) {
		if in, ok := d.ingredients[id]; ok {
			out = &in
		}
	})
	return out, nil
}

func (r *IngredientRepo) GetByCode(_ context.Context, code string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	r.v.read(func(d *data) {
		for _, in := range d.ingredients {
			if in.Code == code {
				in := in
				out = &in
				return
			}
		}
	})
	return out, nil
}

func (r *IngredientRepo) Update(_ context.Context, in *entity.Ingredient) error {
	return r.v.write("ingredients.update", func(d *data) error {
		if _, ok := d.ingredients[in.ID]; !ok {
			return domain.ErrNotFound
		}
		d.ingredients[in.ID] = *in
		return nil
	})
}

func (r *IngredientRepo) List(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	r.v.read(func(d *data) {
		for _, in := range d.ingredients {
			in := in
			out = append(out, &in)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *IngredientRepo) ApplyStockDelta(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var prev, cur decimal.Decimal
	err := r.v.write("ingredients.apply", func(d *data) error {
		in, ok := d.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		prev = in.Stock
		in.Stock = inventory.ClampAtZero(in.Stock.Add(delta))
		in.UpdatedAt = time.Now()
		d.ingredients[id] = in
		cur = in.Stock
		return nil
	})
	return prev, cur, err
}

func (r *IngredientRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	return r.v.write("ingredients.cost", func(d *data) error {
		in, ok := d.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		in.CostPerUnit = cost
		d.ingredients[id] = in
		return nil
	})
}

func (r *IngredientRepo) ListBelowReorderPoint(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	r.v.read(func(d *data) {
		for _, in := range d.ingredients {
			if in.Stock.LessThanOrEqual(in.ReorderPoint) {
				in := in
				out = append(out, &in)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AdjustmentRepo ajustes de ingredientes en memoria.
type AdjustmentRepo struct{ v *view }

func (r *AdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	return r.v.write("adjustments.create", func(d *data) error {
		d.adjustments = append(d.adjustments, *a)
		return nil
	})
}

func (r *AdjustmentRepo) List(_ context.Context, ingredientID string, limit int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	r.v.read(func(d *data) {
		for i := len(d.adjustments) - 1; i >= 0; i-- {
			a := d.adjustments[i]
			if ingredientID != "" && a.IngredientID != ingredientID {
				continue
			}
			out = append(out, &a)
			if limit > 0 && len(out) == limit {
				return
			}
		}
	})
	return out, nil
}

// HistoryRepo historial en memoria.
type HistoryRepo struct{ v *view }

func (r *HistoryRepo) Create(_ context.Context, e *entity.HistoryEntry) error {
	return r.v.write("history.create", func(d *data) error {
		d.history = append(d.history, *e)
		return nil
	})
}

func (r *HistoryRepo) List(_ context.Context, f repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	r.v.read(func(d *data) {
		for i := len(d.history) - 1; i >= 0; i-- {
			e := d.history[i]
			if f.Entity != "" && e.Entity != f.Entity {
				continue
			}
			if f.EntityID != "" && e.EntityID != f.EntityID {
				continue
			}
			out = append(out, &e)
			if f.Limit > 0 && len(out) == f.Limit {
				return
			}
		}
	})
	return out, nil
}
