package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount"` // porcentaje 0-100
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	Location      string            `json:"location"` // id o nombre
	TransactionID string            `json:"transaction_id,omitempty"`
	Items         []SaleItemRequest `json:"items"`
	Discount      decimal.Decimal   `json:"discount"` // monto global
	Tax           decimal.Decimal   `json:"tax"`
	PaymentMethod string            `json:"payment_method"`
	Cashier       string            `json:"cashier"`
	Customer      string            `json:"customer,omitempty"`
}

// SaleItemResponse línea de venta con su total.
type SaleItemResponse struct {
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountPct       decimal.Decimal `json:"discount"`
	WholesaleDiscount decimal.Decimal `json:"wholesale_discount"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID                string             `json:"id"`
	TransactionID     string             `json:"transaction_id"`
	LocationID        string             `json:"location_id"`
	Items             []SaleItemResponse `json:"items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	Discount          decimal.Decimal    `json:"discount"`
	WholesaleDiscount decimal.Decimal    `json:"wholesale_discount"`
	Tax               decimal.Decimal    `json:"tax"`
	Total             decimal.Decimal    `json:"total"`
	PaymentMethod     string             `json:"payment_method"`
	SalesType         string             `json:"sales_type"`
	Cashier           string             `json:"cashier"`
	Customer          string             `json:"customer,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// SaleListResponse listado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
