package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el historial.
const (
	HistoryCreate   = "create"
	HistoryUpdate   = "update"
	HistoryDelete   = "delete"
	HistoryStatus   = "status_change"
	HistoryReceive  = "receive"
	HistoryAdjust   = "adjust"
	HistoryComplete = "complete"
)

// HistoryEntry entrada del historial de auditoría del sistema.
type HistoryEntry struct {
	ID        string
	Action    string
	Entity    string // product, location, batch, transfer, sale, ingredient
	EntityID  string
	Details   json.RawMessage
	UserID    string
	CreatedAt time.Time
}
