package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient materia prima o insumo usado por los lotes de producción.
type Ingredient struct {
	ID           string
	Name         string
	Code         string // único
	CategoryID   string
	Unit         string
	Stock        decimal.Decimal
	MinStock     decimal.Decimal
	ReorderPoint decimal.Decimal
	CostPerUnit  decimal.Decimal // costo promedio ponderado
	SupplierID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
