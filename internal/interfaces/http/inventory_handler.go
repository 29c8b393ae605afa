package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
)

// InventoryHandler consultas de stock, libro de movimientos y ajustes manuales (protegido).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// locationParam devuelve el parámetro de ruta decodificado ("Main%20Store" -> "Main Store").
func locationParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// GetStock godoc
// @Summary      Cantidad disponible de un producto en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        location   path  string  true  "ID o nombre de la ubicación"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId}/{location} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.Context(), c.Params("productId"), locationParam(c, "location"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Listar stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        location    query  string  false  "Filtrar por ubicación (id o nombre)"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	out, err := h.uc.ListStock(c.Context(), c.Query("product_id"), c.Query("location"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements libro de movimientos, más recientes primero.
// GET /api/inventory/movements?product_id=&location=&limit=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.Context(), c.Query("product_id"), c.Query("location"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock de producto
// @Description  Única vía para compensar un crédito de producción o un débito de venta ya aplicado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustProductStockRequest  true  "product_id, location, delta, reason"
// @Success      201   {object}  dto.AdjustProductStockResponse
// @Success      200   {object}  dto.AdjustProductStockResponse  "clave de idempotencia ya aplicada"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustProductStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AdjustProductStock(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusCreated
	if !out.Applied {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(out)
}
