package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación (tienda o planta).
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Kind    string `json:"kind"` // store (por defecto) | facility
	Address string `json:"address"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Address   string    `json:"address"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}
