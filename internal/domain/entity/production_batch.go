package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus estado de un lote de producción.
type BatchStatus string

const (
	BatchInProgress   BatchStatus = "in-progress"
	BatchQualityCheck BatchStatus = "quality-check"
	BatchCompleted    BatchStatus = "completed"
)

// BatchIngredient ingrediente consumido por un lote.
type BatchIngredient struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// ProductionBatch lote de producción. Al completarse acredita Quantity en FacilityID una sola vez.
type ProductionBatch struct {
	ID          string
	ProductID   string
	FacilityID  string
	Quantity    decimal.Decimal
	BatchNumber string // único
	Operator    string
	Status      BatchStatus
	Ingredients []BatchIngredient
	Notes       string
	Revision    int // se incrementa con cada corrección de cantidad tras completar
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
