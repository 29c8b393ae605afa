package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
)

// SaleHandler ventas del punto de venta (protegido).
type SaleHandler struct {
	uc *inventory.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar venta
// @Description  Guarda la venta y descuenta cada línea del stock de la ubicación (piso en cero) en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "location, items, payment_method"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Cashier == "" {
		in.Cashier = GetUserName(c)
	}
	out, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get obtiene una venta con sus líneas.
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  false  "ID o nombre de la ubicación"
// @Param        from      query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit     query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, ok := parseDateQuery(c.Query("from"), false)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, ok := parseDateQuery(c.Query("to"), true)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	out, err := h.uc.List(c.Context(), c.Query("location"), from, to, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta RFC3339 o YYYY-MM-DD; con endOfDay la fecha simple cubre el día completo.
func parseDateQuery(raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return &d, true
}
