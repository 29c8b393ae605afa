package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// DiscountUseCase lectura y cambio de la configuración de descuento mayorista.
type DiscountUseCase struct {
	repos appinv.Repos
	tx    appinv.TxRunner
	now   func() time.Time
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(repos appinv.Repos, tx appinv.TxRunner) *DiscountUseCase {
	return &DiscountUseCase{repos: repos, tx: tx, now: time.Now}
}

// Get devuelve la configuración vigente (valores por defecto si nunca se cambió).
func (uc *DiscountUseCase) Get(ctx context.Context) (*dto.DiscountSettingsResponse, error) {
	s, err := uc.repos.Discounts.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(s), nil
}

// Update reemplaza la configuración. Las ventas ya registradas conservan sus totales.
func (uc *DiscountUseCase) Update(ctx context.Context, userID string, in dto.DiscountSettingsRequest) (*dto.DiscountSettingsResponse, error) {
	s := entity.DiscountSettings{
		WholesaleMinUnits: in.WholesaleMinUnits,
		Type:              entity.DiscountType(strings.ToLower(strings.TrimSpace(in.DiscountType))),
		Percent:           decimal.Zero,
		Amount:            decimal.Zero,
		UpdatedBy:         userID,
		UpdatedAt:         uc.now(),
	}
	switch s.Type {
	case entity.DiscountPercentage:
		if in.DiscountPercent == nil {
			return nil, fmt.Errorf("%w: wholesale_discount_percent es obligatorio", domain.ErrInvalidInput)
		}
	case entity.DiscountFixedAmount:
		if in.DiscountAmount == nil {
			return nil, fmt.Errorf("%w: wholesale_discount_amount es obligatorio", domain.ErrInvalidInput)
		}
	}
	if in.DiscountPercent != nil {
		s.Percent = *in.DiscountPercent
	}
	if in.DiscountAmount != nil {
		s.Amount = *in.DiscountAmount
	}
	if err := inventory.ValidateDiscountSettings(s); err != nil {
		return nil, err
	}

	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		if err := r.Discounts.Save(ctx, &s); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryUpdate, "discount_settings", "wholesale", userID, map[string]any{
			"wholesale_min_units": s.WholesaleMinUnits,
			"discount_type":       s.Type,
			"percent":             s.Percent,
			"amount":              s.Amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return toDiscountResponse(&s), nil
}

func toDiscountResponse(s *entity.DiscountSettings) *dto.DiscountSettingsResponse {
	out := &dto.DiscountSettingsResponse{
		WholesaleMinUnits: s.WholesaleMinUnits,
		DiscountType:      string(s.Type),
		DiscountPercent:   s.Percent,
		UpdatedBy:         s.UpdatedBy,
	}
	if s.Type == entity.DiscountFixedAmount {
		amount := s.Amount
		out.DiscountAmount = &amount
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}
