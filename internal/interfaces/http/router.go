package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-lotes/internal/application/inventory"
	"github.com/jhoicas/Inventario-lotes/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine           *inventory.MovementEngine
	FEFO             *inventory.FEFOMovementUseCase
	Allocator        *inventory.AllocatorUseCase
	Summary          *inventory.SummaryUseCase
	Ledger           *inventory.LedgerUseCase
	Lots             *inventory.LotUseCase
	JWTSecret        string
	ExpiringSoonDays int
	DocsFile         string // swagger.json servido en /docs; vacío lo desactiva
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI: http://localhost:<port>/docs
	if deps.DocsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.DocsFile,
			Path:     "docs",
			Title:    "Inventario Lotes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token y venue resuelto)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireVenue())
	writers := RequireRole(RoleAdmin, RoleManager, RoleStaff)
	managers := RequireRole(RoleAdmin, RoleManager)

	// Stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Engine, deps.FEFO, deps.Allocator, deps.Summary, deps.Ledger, deps.Log)
	stock.Post("/movements", writers, stockHandler.RegisterMovement)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/:id", stockHandler.GetMovement)
	stock.Post("/fefo/consume", writers, stockHandler.ConsumeFEFO)
	stock.Get("/products/:id/allocation", stockHandler.GetAllocation)
	stock.Get("/products/:id/summary", stockHandler.GetSummary)
	stock.Get("/products/:id/movements", stockHandler.ListProductMovements)
	stock.Get("/products/:id/reconciliation", managers, stockHandler.GetReconciliation)

	// Lots
	lots := api.Group("/lots")
	lotHandler := NewLotHandler(deps.Lots, deps.ExpiringSoonDays, deps.Log)
	lots.Post("/", managers, lotHandler.Receive)
	lots.Get("/expiring", lotHandler.Expiring)
	lots.Delete("/:id", managers, lotHandler.Retire)
}
