package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType dirección de un ajuste de ingrediente.
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"
	AdjustmentRemove AdjustmentType = "remove"
)

// StockAdjustment registro de auditoría de un ajuste de stock de ingrediente.
// Guarda la foto antes/después; NewStock ya tiene aplicado el piso en cero.
type StockAdjustment struct {
	ID             string
	IngredientID   string
	IngredientName string
	IngredientCode string
	Type           AdjustmentType
	Quantity       decimal.Decimal
	PreviousStock  decimal.Decimal
	NewStock       decimal.Decimal
	Unit           string
	Reason         string
	UserID         string
	UserName       string
	IPAddress      string
	CreatedAt      time.Time
}
