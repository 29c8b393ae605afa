package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
)

// ProductionHandler lotes de producción (protegido).
type ProductionHandler struct {
	uc *inventory.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *inventory.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "product_id, quantity, batch_number, operator"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "in-progress | quality-check | completed"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/production [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), c.Query("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get obtiene un lote por ID.
func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del lote
// @Description  Solo avanza: in-progress -> quality-check -> completed. Pasar a completed acredita el stock una vez.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchStatusRequest  true  "status"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/{id}/status [patch]
func (h *ProductionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBatchStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Complete completa el lote; el body (actual_quantity) es opcional.
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteBatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Complete(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity corrige la cantidad; si el lote ya está completado acredita o debita la diferencia.
func (h *ProductionHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateBatchQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un lote no completado.
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
