package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry representa la cantidad disponible de un producto en una ubicación.
// Se crea en la primera mutación y nunca se elimina; cero es un estado válido.
type StockEntry struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
