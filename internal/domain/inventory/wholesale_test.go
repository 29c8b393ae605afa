package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
)

func line(price, qty, pct string) entity.SaleItem {
	return entity.SaleItem{
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    decimal.RequireFromString(qty),
		DiscountPct: decimal.RequireFromString(pct),
	}
}

func strs(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento mayorista
// ──────────────────────────────────────────────────────────────────────────────

func TestWholesaleDiscounts_PorGrupoDePrecio(t *testing.T) {
	settings := entity.DiscountSettings{WholesaleMinUnits: 5, Type: entity.DiscountPercentage, Percent: decimal.NewFromInt(10)}
	items := []entity.SaleItem{
		line("100", "3", "0"), // grupo 100: 3 + 2 = 5 califica
		line("100.00", "2", "0"),
		line("50", "4", "0"), // grupo 50: 4 no califica
	}

	got, wholesale := inventory.WholesaleDiscounts(items, settings)
	assert.True(t, wholesale)
	assert.Equal(t, []string{"30", "20", "0"}, strs(got))
}

func TestWholesaleDiscounts_MontoFijoPorUnidad(t *testing.T) {
	settings := entity.DiscountSettings{WholesaleMinUnits: 5, Type: entity.DiscountFixedAmount, Amount: decimal.NewFromInt(2)}

	got, wholesale := inventory.WholesaleDiscounts([]entity.SaleItem{line("10", "6", "0")}, settings)
	assert.True(t, wholesale)
	assert.Equal(t, []string{"12"}, strs(got))

	// El fijo no deja la línea en negativo: 6 × 1 = 6 de bruto, 50 % ya descontado.
	settings.Amount = decimal.NewFromInt(5)
	got, _ = inventory.WholesaleDiscounts([]entity.SaleItem{line("1", "6", "50")}, settings)
	assert.Equal(t, []string{"3"}, strs(got))
}

func TestWholesaleDiscounts_Minorista(t *testing.T) {
	settings := entity.DefaultDiscountSettings()
	got, wholesale := inventory.WholesaleDiscounts([]entity.SaleItem{line("12", "4.9", "0")}, settings)
	assert.False(t, wholesale)
	assert.Equal(t, []string{"0"}, strs(got))
}

func TestValidateDiscountSettings(t *testing.T) {
	ok := entity.DefaultDiscountSettings()
	assert.NoError(t, inventory.ValidateDiscountSettings(ok))

	cases := map[string]func(s *entity.DiscountSettings){
		"mínimo cero":          func(s *entity.DiscountSettings) { s.WholesaleMinUnits = 0 },
		"mínimo sobre 1000":    func(s *entity.DiscountSettings) { s.WholesaleMinUnits = 1001 },
		"porcentaje sobre 100": func(s *entity.DiscountSettings) { s.Percent = decimal.NewFromInt(101) },
		"tipo desconocido":     func(s *entity.DiscountSettings) { s.Type = "bulk" },
		"monto negativo": func(s *entity.DiscountSettings) {
			s.Type = entity.DiscountFixedAmount
			s.Amount = decimal.NewFromInt(-1)
		},
	}
	for name, mutate := range cases {
		s := entity.DefaultDiscountSettings()
		mutate(&s)
		assert.ErrorIs(t, inventory.ValidateDiscountSettings(s), domain.ErrInvalidInput, name)
	}
}
