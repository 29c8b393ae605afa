package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/usecase"
)

// DiscountHandler configuración del descuento mayorista que aplica el POS.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *usecase.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de descuento mayorista
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DiscountSettingsResponse
// @Router       /api/settings/discounts [get]
func (h *DiscountHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar el descuento mayorista
// @Description  Mínimo de unidades por grupo de precio y descuento en porcentaje o monto fijo por unidad.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountSettingsRequest  true  "Configuración"
// @Success      200   {object}  dto.DiscountSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings/discounts [put]
func (h *DiscountHandler) Update(c *fiber.Ctx) error {
	var in dto.DiscountSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
