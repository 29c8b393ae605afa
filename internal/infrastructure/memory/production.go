package memory

import (
	"context"
	"sort"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var (
	_ repository.ProductionBatchRepository = (*BatchRepo)(nil)
	_ repository.TransferRepository        = (*TransferRepo)(nil)
)

// BatchRepo lotes de producción en memoria.
type BatchRepo struct{ v *view }

func copyBatch(b entity.ProductionBatch) entity.ProductionBatch {
	b.Ingredients = append([]entity.BatchIngredient(nil), b.Ingredients...)
	return b
}

func (r *BatchRepo) Create(_ context.Context, b *entity.ProductionBatch) error {
	return r.v.write("batches.create", func(d *data) error {
		for _, x := range d.batches {
			if x.BatchNumber == b.BatchNumber {
				return domain.ErrDuplicate
			}
		}
		d.batches[b.ID] = copyBatch(*b)
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.ProductionBatch, error) {
	var out *entity.ProductionBatch
	r.v.read(func(d *data) {
		if b, ok := d.batches[id]; ok {
			b = copyBatch(b)
			out = &b
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya son exclusivas.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) GetByBatchNumber(_ context.Context, number string) (*entity.ProductionBatch, error) {
	var out *entity.ProductionBatch
	r.v.read(func(d *data) {
		for _, b := range d.batches {
			if b.BatchNumber == number {
				b = copyBatch(b)
				out = &b
				return
			}
		}
	})
	return out, nil
}

func (r *BatchRepo) Update(_ context.Context, b *entity.ProductionBatch) error {
	return r.v.write("batches.update", func(d *data) error {
		if _, ok := d.batches[b.ID]; !ok {
			return domain.ErrNotFound
		}
		d.batches[b.ID] = copyBatch(*b)
		return nil
	})
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	return r.v.write("batches.delete", func(d *data) error {
		delete(d.batches, id)
		return nil
	})
}

func (r *BatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.ProductionBatch, error) {
	var out []*entity.ProductionBatch
	r.v.read(func(d *data) {
		for _, b := range d.batches {
			if f.Status != "" && b.Status != f.Status {
				continue
			}
			if f.ProductID != "" && b.ProductID != f.ProductID {
				continue
			}
			b = copyBatch(b)
			out = append(out, &b)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// TransferRepo traslados en memoria.
type TransferRepo struct{ v *view }

func (r *TransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	return r.v.write("transfers.create", func(d *data) error {
		d.transfers[t.ID] = *t
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	r.v.read(func(d *data) {
		if t, ok := d.transfers[id]; ok {
			out = &t
		}
	})
	return out, nil
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) Update(_ context.Context, t *entity.Transfer) error {
	return r.v.write("transfers.update", func(d *data) error {
		if _, ok := d.transfers[t.ID]; !ok {
			return domain.ErrNotFound
		}
		d.transfers[t.ID] = *t
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	r.v.read(func(d *data) {
		for _, t := range d.transfers {
			if f.Status != "" && t.Status != f.Status {
				continue
			}
			if f.LocationID != "" && t.FromID != f.LocationID && t.ToID != f.LocationID {
				continue
			}
			t := t
			out = append(out, &t)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TransferRepo) CountActiveByLocation(_ context.Context, locationID string) (int, error) {
	n := 0
	r.v.read(func(d *data) {
		for _, t := range d.transfers {
			if t.IsActive() && (t.FromID == locationID || t.ToID == locationID) {
				n++
			}
		}
	})
	return n, nil
}
