package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de evento que modificó el stock.
type MovementKind string

const (
	MovementProductionCredit MovementKind = "PRODUCTION_CREDIT"
	MovementTransferDebit    MovementKind = "TRANSFER_DEBIT"
	MovementTransferCredit   MovementKind = "TRANSFER_CREDIT"
	MovementSaleDebit        MovementKind = "SALE_DEBIT"
	MovementManualAdjustment MovementKind = "MANUAL_ADJUSTMENT"
)

// StockMovement es una fila del libro de movimientos: una por mutación aplicada.
// IdempotencyKey es única; una segunda mutación con la misma clave no se aplica.
type StockMovement struct {
	ID             string
	IdempotencyKey string
	Kind           MovementKind
	ProductID      string
	LocationID     string
	Delta          decimal.Decimal // delta solicitado (positivo crédito, negativo débito)
	BalanceAfter   decimal.Decimal // cantidad resultante tras aplicar el piso en cero
	Reference      string          // lote, traslado, venta o motivo del ajuste
	CreatedBy      string
	CreatedAt      time.Time
}
