package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/lztmeat/inventario-api/internal/application/analytics"
	"github.com/lztmeat/inventario-api/internal/application/ingredients"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/application/report"
	"github.com/lztmeat/inventario-api/internal/application/usecase"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/lztmeat/inventario-api/internal/infrastructure/cache"
	"github.com/lztmeat/inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/lztmeat/inventario-api/internal/infrastructure/pdf"
	"github.com/lztmeat/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/lztmeat/inventario-api/internal/interfaces/http"
	"github.com/lztmeat/inventario-api/pkg/config"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos         inventory.Repos
		txRunner      inventory.TxRunner
		analyticsRepo repository.AnalyticsRepository
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		repos, txRunner, analyticsRepo = store.Repos(), store, store.Analytics()
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		retryPolicy := postgres.RetryPolicyFromConfig(cfg.Retry)
		pool, err := postgres.NewPool(ctx, cfg.DB, retryPolicy, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log.Component("postgres")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool, retryPolicy, log.Component("postgres"))
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
	}

	// Caché de lectura de stock: Redis si está configurado.
	var stockCache inventory.StockCache = inventory.NoopCache{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		stockCache = cache.NewRedisStockCache(rdb, cfg.Redis.TTL)
	}

	locationUC := usecase.NewLocationUseCase(repos, txRunner, log)
	if err := locationUC.EnsureSystemLocations(ctx); err != nil {
		log.Fatal().Err(err).Msg("ubicaciones del sistema")
	}

	ledger := inventory.NewStockLedger(txRunner, stockCache, log.Component("ledger"))
	ingredientUC := ingredients.NewUseCase(repos, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario API",
	}))

	err = httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    usecase.NewProductUseCase(repos, txRunner),
		LocationUC:   locationUC,
		HistoryUC:    usecase.NewHistoryUseCase(repos.History),
		DiscountUC:   usecase.NewDiscountUseCase(repos, txRunner),
		StockUC:      inventory.NewStockUseCase(repos, ledger, stockCache, log),
		ProductionUC: inventory.NewProductionUseCase(repos, ledger, ingredientUC, log),
		TransferUC:   inventory.NewTransferUseCase(repos, ledger),
		SaleUC:       inventory.NewSaleUseCase(repos, ledger),
		IngredientUC: ingredientUC,
		StockReport:  report.NewStockReportUseCase(repos, ingredientUC, infrapdf.NewMarotoPDFGenerator()),
		DailyReport:  report.NewDailySalesUseCase(repos),
		DashboardUC:  appanalytics.NewDashboardUseCase(analyticsRepo, repos.Locations),
		JWTSecret:    cfg.JWT.Secret,
		RateLimit:    cfg.RateLimit.Rate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
