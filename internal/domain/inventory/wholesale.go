package inventory

import (
	"fmt"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateDiscountSettings aplica los rangos de la configuración mayorista.
func ValidateDiscountSettings(s entity.DiscountSettings) error {
	if s.WholesaleMinUnits < 1 || s.WholesaleMinUnits > 1000 {
		return fmt.Errorf("%w: unidades mínimas fuera de 1-1000", domain.ErrInvalidInput)
	}
	switch s.Type {
	case entity.DiscountPercentage:
		if s.Percent.IsNegative() || s.Percent.GreaterThan(hundred) {
			return fmt.Errorf("%w: porcentaje fuera de 0-100", domain.ErrInvalidInput)
		}
	case entity.DiscountFixedAmount:
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: monto fijo negativo", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de descuento %q", domain.ErrInvalidInput, s.Type)
	}
	return nil
}

// WholesaleDiscounts calcula el descuento mayorista de cada línea. Las líneas se agrupan por
// precio unitario; un grupo califica si su cantidad total llega al mínimo. El descuento de una
// línea nunca supera lo que queda de su bruto tras el descuento porcentual de la línea.
// El segundo valor indica si al menos un grupo calificó.
func WholesaleDiscounts(items []entity.SaleItem, s entity.DiscountSettings) ([]decimal.Decimal, bool) {
	out := make([]decimal.Decimal, len(items))
	for i := range out {
		out[i] = decimal.Zero
	}
	if s.WholesaleMinUnits < 1 {
		return out, false
	}

	groups := map[string]decimal.Decimal{}
	for _, it := range items {
		k := it.UnitPrice.String()
		groups[k] = groups[k].Add(it.Quantity)
	}
	minUnits := decimal.NewFromInt(int64(s.WholesaleMinUnits))

	wholesale := false
	for i, it := range items {
		if groups[it.UnitPrice.String()].LessThan(minUnits) {
			continue
		}
		wholesale = true
		gross := it.UnitPrice.Mul(it.Quantity)
		var disc decimal.Decimal
		if s.Type == entity.DiscountFixedAmount {
			disc = s.Amount.Mul(it.Quantity)
		} else {
			disc = gross.Mul(s.Percent).Div(hundred)
		}
		remaining := gross.Sub(gross.Mul(it.DiscountPct).Div(hundred))
		out[i] = decimal.Min(disc, remaining).Round(2)
	}
	return out, wholesale
}
