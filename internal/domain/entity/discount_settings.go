package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType forma de calcular el descuento mayorista.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// Tipos de venta según califique o no como mayorista.
const (
	SalesTypeRetail    = "retail"
	SalesTypeWholesale = "wholesale"
)

// DiscountSettings configuración única del descuento mayorista. Las líneas con el mismo precio
// unitario se agrupan; si la cantidad del grupo llega a WholesaleMinUnits, cada línea del grupo
// recibe Percent % de su bruto (percentage) o Amount por unidad (fixed_amount).
type DiscountSettings struct {
	WholesaleMinUnits int
	Type              DiscountType
	Percent           decimal.Decimal // 0-100
	Amount            decimal.Decimal // por unidad
	UpdatedBy         string
	UpdatedAt         time.Time
}

// DefaultDiscountSettings valores iniciales: 5 unidades, 1 %.
func DefaultDiscountSettings() DiscountSettings {
	return DiscountSettings{
		WholesaleMinUnits: 5,
		Type:              DiscountPercentage,
		Percent:           decimal.NewFromInt(1),
		Amount:            decimal.Zero,
	}
}
