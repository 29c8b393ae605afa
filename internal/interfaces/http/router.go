package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/lztmeat/inventario-api/internal/application/analytics"
	"github.com/lztmeat/inventario-api/internal/application/ingredients"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/application/report"
	"github.com/lztmeat/inventario-api/internal/application/usecase"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	LocationUC   *usecase.LocationUseCase
	HistoryUC    *usecase.HistoryUseCase
	DiscountUC   *usecase.DiscountUseCase
	StockUC      *inventory.StockUseCase
	ProductionUC *inventory.ProductionUseCase
	TransferUC   *inventory.TransferUseCase
	SaleUC       *inventory.SaleUseCase
	IngredientUC *ingredients.UseCase
	StockReport  *report.StockReportUseCase
	DailyReport  *report.DailySalesUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
	// RateLimit formato ulule ("300-M"); vacío desactiva el límite.
	RateLimit string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) error {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	handlers := []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
	if deps.RateLimit != "" {
		limit, err := RateLimit(deps.RateLimit)
		if err != nil {
			return err
		}
		handlers = append(handlers, limit)
	}
	api := app.Group("/api", handlers...)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Get("/:location", locationHandler.Get)
	locations.Delete("/:location", adminOnly, locationHandler.Delete)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	invGroup.Get("/stock", inventoryHandler.ListStock)
	invGroup.Get("/stock/:productId/:location", inventoryHandler.GetStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.AdjustStock)

	// Production batches
	production := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Get("/", productionHandler.List)
	production.Post("/", productionHandler.Create)
	production.Get("/:id", productionHandler.Get)
	production.Patch("/:id/status", productionHandler.UpdateStatus)
	production.Post("/:id/complete", productionHandler.Complete)
	production.Patch("/:id/quantity", productionHandler.UpdateQuantity)
	production.Delete("/:id", productionHandler.Delete)

	// Transfers
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Patch("/:id/status", transferHandler.UpdateStatus)
	transfers.Post("/:id/receive", transferHandler.Receive)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Record)
	sales.Get("/:id", saleHandler.Get)

	// Ingredients (las rutas fijas antes de /:id)
	ingredientsGroup := api.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredientsGroup.Get("/", ingredientHandler.List)
	ingredientsGroup.Post("/", adminOnly, ingredientHandler.Create)
	ingredientsGroup.Get("/reorder", ingredientHandler.Reorder)
	ingredientsGroup.Get("/adjustments", ingredientHandler.ListAdjustments)
	ingredientsGroup.Get("/:id", ingredientHandler.Get)
	ingredientsGroup.Post("/:id/adjustments", ingredientHandler.AdjustStock)

	// Settings
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	api.Get("/settings/discounts", discountHandler.Get)
	api.Put("/settings/discounts", adminOnly, discountHandler.Update)

	// History
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	api.Get("/history", historyHandler.List)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.StockReport, deps.DailyReport, deps.DashboardUC)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
	reports.Get("/daily.csv", reportHandler.DailyCSV)
	reports.Get("/sales-summary", reportHandler.SalesSummary)

	return nil
}
