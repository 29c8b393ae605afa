package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write("products.create", func(d *data) error {
		for _, x := range d.products {
			if x.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(d *data) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(d *data) {
		for _, p := range d.products {
			if p.SKU == sku {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write("products.update", func(d *data) error {
		if _, ok := d.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	r.v.read(func(d *data) {
		for _, p := range d.products {
			p := p
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write("products.delete", func(d *data) error {
		delete(d.products, id)
		return nil
	})
}

func (r *ProductRepo) HasReferences(_ context.Context, id string) (bool, error) {
	found := false
	r.v.read(func(d *data) {
		for k := range d.stock {
			if k.productID == id {
				found = true
				return
			}
		}
		for _, b := range d.batches {
			if b.ProductID == id {
				found = true
				return
			}
		}
		for _, t := range d.transfers {
			if t.ProductID == id {
				found = true
				return
			}
		}
		for _, s := range d.sales {
			for _, it := range s.Items {
				if it.ProductID == id {
					found = true
					return
				}
			}
		}
	})
	return found, nil
}

// LocationRepo registro de ubicaciones en memoria.
type LocationRepo struct{ v *view }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.v.write("locations.create", func(d *data) error {
		for _, x := range d.locations {
			if x.NameKey == l.NameKey {
				return domain.ErrDuplicate
			}
		}
		d.locations[l.ID] = *l
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.v.read(func(d *data) {
		if l, ok := d.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *LocationRepo) GetByNameKey(_ context.Context, key string) (*entity.Location, error) {
	var out *entity.Location
	r.v.read(func(d *data) {
		for _, l := range d.locations {
			if l.NameKey == key {
				l := l
				out = &l
				return
			}
		}
	})
	return out, nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	var all []*entity.Location
	r.v.read(func(d *data) {
		for _, l := range d.locations {
			l := l
			all = append(all, &l)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Delete replica las claves foráneas de Postgres: una ubicación con stock, movimientos,
// lotes, traslados o ventas no se borra.
func (r *LocationRepo) Delete(_ context.Context, id string) error {
	return r.v.write("locations.delete", func(d *data) error {
		if locationReferenced(d, id) {
			return fmt.Errorf("%w: la ubicación tiene registros asociados", domain.ErrConflict)
		}
		delete(d.locations, id)
		return nil
	})
}

func locationReferenced(d *data, id string) bool {
	for k := range d.stock {
		if k.locationID == id {
			return true
		}
	}
	for _, m := range d.movements {
		if m.LocationID == id {
			return true
		}
	}
	for _, b := range d.batches {
		if b.FacilityID == id {
			return true
		}
	}
	for _, t := range d.transfers {
		if t.FromID == id || t.ToID == id {
			return true
		}
	}
	for _, s := range d.sales {
		if s.LocationID == id {
			return true
		}
	}
	return false
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
