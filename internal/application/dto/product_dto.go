package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU        string          `json:"sku" validate:"required,min=1,max=100"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID string          `json:"category_id"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja vía movimientos).
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID *string          `json:"category_id"`
	Unit       *string          `json:"unit"`
	Price      *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
