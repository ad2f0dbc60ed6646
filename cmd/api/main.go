package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/Inventario-lotes/docs"
	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"github.com/jhoicas/Inventario-lotes/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-lotes/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/Inventario-lotes/internal/interfaces/http"
	"github.com/jhoicas/Inventario-lotes/pkg/config"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
)

// @title                       Inventario Lotes API
// @version                     1.0
// @description                 Movimientos de stock con lotes, asignación FEFO y ledger auditable por venue.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("fefo_atomic", cfg.Stock.AtomicFEFO).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	otelProviders, err := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry, log.Named("telemetry"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}
	stockMetrics, err := telemetry.NewStockMetrics(otelProviders.Meter("inventario-lotes/stock"))
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas de stock")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLog := log.Named("stock")
	engine := inventory.NewMovementEngine(txRunner, stockMetrics, stockLog)
	allocator := inventory.NewAllocatorUseCase(productRepo, lotRepo, stockMetrics)
	fefoUC := inventory.NewFEFOMovementUseCase(allocator, engine, txRunner, cfg.Stock.AtomicFEFO)
	summaryUC := inventory.NewSummaryUseCase(productRepo, lotRepo)
	ledgerUC := inventory.NewLedgerUseCase(movementRepo, productRepo, lotRepo, cfg.Stock.LedgerPageSize)
	lotUC := inventory.NewLotUseCase(txRunner, engine, productRepo, lotRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:           engine,
		FEFO:             fefoUC,
		Allocator:        allocator,
		Summary:          summaryUC,
		Ledger:           ledgerUC,
		Lots:             lotUC,
		JWTSecret:        cfg.JWT.Secret,
		ExpiringSoonDays: cfg.Stock.ExpiringSoonDays,
		DocsFile:         "./docs/swagger.json",
		Log:              log.Named("http"),
	})

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
	if err := otelProviders.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de OpenTelemetry")
	}

	log.Info().Msg("aplicación detenida")
}
