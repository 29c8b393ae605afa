package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

var _ repository.DiscountSettingsRepository = (*DiscountSettingsRepo)(nil)

// DiscountSettingsRepo fila única (id = 1) de discount_settings.
type DiscountSettingsRepo struct {
	q Querier
}

// NewDiscountSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscountSettingsRepository(q Querier) *DiscountSettingsRepo {
	return &DiscountSettingsRepo{q: q}
}

// Get lee la configuración; sin fila devuelve los valores por defecto.
func (r *DiscountSettingsRepo) Get(ctx context.Context) (*entity.DiscountSettings, error) {
	var (
		s   entity.DiscountSettings
		typ string
	)
	err := r.q.QueryRow(ctx, `
		SELECT wholesale_min_units, discount_type, discount_percent, discount_amount, updated_by, updated_at
		FROM discount_settings WHERE id = 1`,
	).Scan(&s.WholesaleMinUnits, &typ, &s.Percent, &s.Amount, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			def := entity.DefaultDiscountSettings()
			return &def, nil
		}
		return nil, fmt.Errorf("get discount settings: %w", err)
	}
	s.Type = entity.DiscountType(typ)
	return &s, nil
}

// Save inserta o reemplaza la fila única.
func (r *DiscountSettingsRepo) Save(ctx context.Context, s *entity.DiscountSettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO discount_settings (id, wholesale_min_units, discount_type, discount_percent, discount_amount, updated_by, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			wholesale_min_units = EXCLUDED.wholesale_min_units,
			discount_type       = EXCLUDED.discount_type,
			discount_percent    = EXCLUDED.discount_percent,
			discount_amount     = EXCLUDED.discount_amount,
			updated_by          = EXCLUDED.updated_by,
			updated_at          = EXCLUDED.updated_at`,
		s.WholesaleMinUnits, string(s.Type), s.Percent, s.Amount, s.UpdatedBy, s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: configuración de descuento fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("save discount settings: %w", err)
	}
	return nil
}
