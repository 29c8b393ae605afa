package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	ProductID   string          `json:"product_id"`
	From        string          `json:"from"` // id o nombre de la ubicación
	To          string          `json:"to"`
	Quantity    decimal.Decimal `json:"quantity"`
	RequestedBy string          `json:"requested_by"`
	Notes       string          `json:"notes,omitempty"`
}

// UpdateTransferStatusRequest body para PATCH /api/transfers/:id/status.
type UpdateTransferStatusRequest struct {
	Status string `json:"status"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
type ReceiveTransferRequest struct {
	QuantityReceived  *decimal.Decimal `json:"quantity_received,omitempty"`
	DiscrepancyReason string           `json:"discrepancy_reason,omitempty"`
	ReceivedBy        string           `json:"received_by"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	FromID            string           `json:"from_id"`
	ToID              string           `json:"to_id"`
	Quantity          decimal.Decimal  `json:"quantity"`
	QuantityReceived  *decimal.Decimal `json:"quantity_received"`
	Discrepancy       *decimal.Decimal `json:"discrepancy"`
	DiscrepancyReason string           `json:"discrepancy_reason,omitempty"`
	Status            string           `json:"status"`
	RequestedBy       string           `json:"requested_by"`
	ReceivedBy        string           `json:"received_by,omitempty"`
	ReceivedAt        *time.Time       `json:"received_at,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TransferListResponse listado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
}
