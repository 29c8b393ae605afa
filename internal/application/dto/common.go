package dto

// PageRequest paginación para listados (?limit=&offset=). Cero aplica el valor por defecto del caso de uso.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
