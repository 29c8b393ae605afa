package repository

import (
	"context"

	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// DiscountSettingsRepository configuración única del descuento mayorista.
type DiscountSettingsRepository interface {
	// Get devuelve la configuración guardada o los valores por defecto si nunca se guardó.
	Get(ctx context.Context) (*entity.DiscountSettings, error)
	Save(ctx context.Context, settings *entity.DiscountSettings) error
}
