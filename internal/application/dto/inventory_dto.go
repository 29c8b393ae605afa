package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse cantidad disponible de un producto en una ubicación.
type StockResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// StockListResponse listado de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	IdempotencyKey string          `json:"idempotency_key"`
	Kind           string          `json:"kind"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	Delta          decimal.Decimal `json:"delta"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	Reference      string          `json:"reference"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// AdjustProductStockRequest body para POST /api/inventory/adjustments.
// Es la única vía para compensar créditos de producción o débitos de venta ya aplicados.
type AdjustProductStockRequest struct {
	ProductID      string          `json:"product_id"`
	Location       string          `json:"location"` // id o nombre
	Delta          decimal.Decimal `json:"delta"`
	Reason         string          `json:"reason"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// AdjustProductStockResponse resultado del ajuste manual.
type AdjustProductStockResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Applied    bool            `json:"applied"` // false si la clave ya había sido aplicada
}
