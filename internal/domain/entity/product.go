package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto cárnico del catálogo.
// El stock no vive aquí: se maneja por ubicación en StockEntry.
type Product struct {
	ID         string
	SKU        string // código único
	Name       string
	CategoryID string // referencia opaca; las categorías se administran fuera de este servicio
	Unit       string // kg, lb, und
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
