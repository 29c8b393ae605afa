package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/application/ingredients"
)

// IngredientHandler materia prima: catálogo, ajustes de stock y lista de reorden (protegido).
type IngredientHandler struct {
	uc *ingredients.UseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *ingredients.UseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create crea un ingrediente. POST /api/ingredients
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *IngredientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock de ingrediente
// @Description  Suma o resta con piso en cero y guarda la foto antes/después. Con unit_cost en "add" recalcula el costo promedio.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.AdjustStockRequest  true  "type, quantity, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/adjustments [post]
func (h *IngredientHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.UserName == "" {
		in.UserName = GetUserName(c)
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), GetUserID(c), c.IP(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAdjustments historial de ajustes; ?ingredient_id= filtra.
func (h *IngredientHandler) ListAdjustments(c *fiber.Ctx) error {
	out, err := h.uc.ListAdjustments(c.Context(), c.Query("ingredient_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reorder godoc
// @Summary      Lista de reorden de ingredientes
// @Description  Ingredientes con stock en o bajo el punto de reorden, con cantidad sugerida y prioridad.
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ingredients/reorder [get]
func (h *IngredientHandler) Reorder(c *fiber.Ctx) error {
	list, err := h.uc.ReorderList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(list),
		"reorder": list,
	})
}
