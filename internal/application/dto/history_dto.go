package dto

import (
	"encoding/json"
	"time"
)

// HistoryEntryResponse entrada del historial de auditoría.
type HistoryEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Details   json.RawMessage `json:"details,omitempty"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// HistoryListResponse listado del historial.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
}
