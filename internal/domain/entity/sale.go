package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem línea de una venta.
type SaleItem struct {
	ProductID         string
	Quantity          decimal.Decimal
	UnitPrice         decimal.Decimal
	DiscountPct       decimal.Decimal // 0-100
	WholesaleDiscount decimal.Decimal // monto del descuento mayorista
	LineTotal         decimal.Decimal // bruto - bruto*DiscountPct/100 - WholesaleDiscount
}

// Sale venta registrada en el punto de venta. Su creación descuenta el stock de LocationID.
type Sale struct {
	ID                string
	TransactionID     string // único
	LocationID        string
	Items             []SaleItem
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal // monto global
	Tax               decimal.Decimal
	Total             decimal.Decimal
	PaymentMethod     string
	Cashier           string
	Customer          string
	SalesType         string          // retail | wholesale
	WholesaleDiscount decimal.Decimal // suma de las líneas
	CreatedAt         time.Time
}
