package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/usecase"
)

// HistoryHandler consulta del historial de auditoría.
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List GET /api/history?entity=&entity_id=&limit=
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("entity"), c.Query("entity_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
