package memory

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var _ repository.DiscountSettingsRepository = (*DiscountRepo)(nil)

// DiscountRepo configuración mayorista en memoria.
type DiscountRepo struct{ v *view }

func (r *DiscountRepo) Get(_ context.Context) (*entity.DiscountSettings, error) {
	out := entity.DefaultDiscountSettings()
	r.v.read(func(d *data) {
		if d.discounts != nil {
			out = *d.discounts
		}
	})
	return &out, nil
}

func (r *DiscountRepo) Save(_ context.Context, s *entity.DiscountSettings) error {
	return r.v.write("discounts.save", func(d *data) error {
		ds := *s
		d.discounts = &ds
		return nil
	})
}
