package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus estado de un traslado entre ubicaciones.
type TransferStatus string

const (
	TransferPending   TransferStatus = "Pending"
	TransferInTransit TransferStatus = "In Transit"
	TransferCompleted TransferStatus = "Completed"
	TransferCancelled TransferStatus = "Cancelled"
)

// Transfer solicitud de traslado de un producto entre dos ubicaciones.
// Una vez Completed, QuantityReceived no es nil y el movimiento de stock se aplicó una vez.
type Transfer struct {
	ID                string
	ProductID         string
	FromID            string
	ToID              string
	Quantity          decimal.Decimal  // cantidad solicitada
	QuantityReceived  *decimal.Decimal // nil hasta la recepción
	Discrepancy       *decimal.Decimal // Quantity - QuantityReceived
	DiscrepancyReason string
	Status            TransferStatus
	RequestedBy       string
	ReceivedBy        string
	ReceivedAt        *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive indica si el traslado aún no llega a un estado terminal.
func (t *Transfer) IsActive() bool {
	return t.Status == TransferPending || t.Status == TransferInTransit
}
