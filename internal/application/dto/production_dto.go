package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchIngredientDTO ingrediente consumido por un lote.
type BatchIngredientDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateBatchRequest body para POST /api/production.
type CreateBatchRequest struct {
	ProductID       string               `json:"product_id"`
	Quantity        decimal.Decimal      `json:"quantity"`
	BatchNumber     string               `json:"batch_number"`
	Operator        string               `json:"operator"`
	Facility        string               `json:"facility,omitempty"` // id o nombre; por defecto Production Facility
	IngredientsUsed []BatchIngredientDTO `json:"ingredients_used,omitempty"`
	Notes           string               `json:"notes,omitempty"`
}

// CompleteBatchRequest body para POST /api/production/:id/complete.
type CompleteBatchRequest struct {
	ActualQuantity *decimal.Decimal `json:"actual_quantity,omitempty"`
}

// UpdateBatchStatusRequest body para PATCH /api/production/:id/status.
type UpdateBatchStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBatchQuantityRequest body para PATCH /api/production/:id/quantity.
type UpdateBatchQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// BatchResponse salida de un lote de producción.
type BatchResponse struct {
	ID              string               `json:"id"`
	ProductID       string               `json:"product_id"`
	FacilityID      string               `json:"facility_id"`
	Quantity        decimal.Decimal      `json:"quantity"`
	BatchNumber     string               `json:"batch_number"`
	Operator        string               `json:"operator"`
	Status          string               `json:"status"`
	IngredientsUsed []BatchIngredientDTO `json:"ingredients_used"`
	Notes           string               `json:"notes"`
	Revision        int                  `json:"revision"`
	CompletedAt     *time.Time           `json:"completed_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BatchListResponse listado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
}
