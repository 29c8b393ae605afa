package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountSettingsRequest body de PUT /api/settings/discounts.
// El porcentaje es obligatorio con discount_type=percentage y el monto con fixed_amount.
type DiscountSettingsRequest struct {
	WholesaleMinUnits int              `json:"wholesale_min_units"`
	DiscountType      string           `json:"discount_type"`
	DiscountPercent   *decimal.Decimal `json:"wholesale_discount_percent"`
	DiscountAmount    *decimal.Decimal `json:"wholesale_discount_amount"`
}

// DiscountSettingsResponse configuración vigente. El monto solo se informa con fixed_amount.
type DiscountSettingsResponse struct {
	WholesaleMinUnits int              `json:"wholesale_min_units"`
	DiscountType      string           `json:"discount_type"`
	DiscountPercent   decimal.Decimal  `json:"wholesale_discount_percent"`
	DiscountAmount    *decimal.Decimal `json:"wholesale_discount_amount"`
	UpdatedBy         string           `json:"updated_by,omitempty"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
}
