package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	CategoryID   string          `json:"category_id"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	SupplierID   string          `json:"supplier_id"`
}

// IngredientResponse salida de un ingrediente.
type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	CategoryID   string          `json:"category_id"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	SupplierID   string          `json:"supplier_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientListResponse listado de ingredientes.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
}

// AdjustStockRequest body para POST /api/ingredients/:id/adjustments.
type AdjustStockRequest struct {
	Type     string           `json:"type"` // add | remove
	Quantity decimal.Decimal  `json:"quantity"`
	Reason   string           `json:"reason"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"` // solo add: recalcula el costo promedio
	UserName string           `json:"user_name,omitempty"`
}

// AdjustmentResponse registro de ajuste con foto antes/después.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	IngredientCode string          `json:"ingredient_code"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	PreviousStock  decimal.Decimal `json:"previous_stock"`
	NewStock       decimal.Decimal `json:"new_stock"`
	Unit           string          `json:"unit"`
	Reason         string          `json:"reason"`
	UserID         string          `json:"user_id"`
	UserName       string          `json:"user_name"`
	IPAddress      string          `json:"ip_address"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AdjustmentListResponse listado de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
}

// ReorderSuggestionDTO ingrediente en o bajo su punto de reorden con la cantidad sugerida de pedido.
type ReorderSuggestionDTO struct {
	IngredientID       string          `json:"ingredient_id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // ReorderPoint * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	BelowMinimum       bool            `json:"below_minimum"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
