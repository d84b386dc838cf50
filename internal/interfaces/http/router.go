package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/envos-stock/internal/application/analytics"
	"github.com/jhoicas/envos-stock/internal/application/auth"
	"github.com/jhoicas/envos-stock/internal/application/billing"
	"github.com/jhoicas/envos-stock/internal/application/closing"
	"github.com/jhoicas/envos-stock/internal/application/inventory"
	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *inventory.CatalogUseCase
	MovementUC *inventory.MovementUseCase
	StatusUC   *inventory.StatusUseCase
	IngestUC   *inventory.IngestLoadsUseCase
	LoadParser LoadSheetParser
	StagingUC  *billing.StagingUseCase
	ReportUC   *billing.ReportUseCase
	ClosingUC  *closing.UseCase
	StatsUC    *analytics.StatsUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Catálogo
	articles := api.Group("/articles", requireAuth)
	articleHandler := NewArticleHandler(deps.CatalogUC)
	articles.Get("/", articleHandler.List)
	articles.Post("/", articleHandler.Save)
	articles.Patch("/:sku/toggle", articleHandler.Toggle)

	// Ledger
	movements := api.Group("/movements", requireAuth)
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Post("/inbound", movementHandler.Inbound)
	movements.Post("/consumption", movementHandler.Consumption)
	movements.Post("/regularization", movementHandler.Regularize)

	// Inventario calculado
	inv := api.Group("/inventory", requireAuth)
	inventoryHandler := NewInventoryHandler(deps.StatusUC)
	inv.Get("/", inventoryHandler.Inventory)
	inv.Get("/replenishment", inventoryHandler.Replenishment)

	// Cargas e ingestión
	loadHandler := NewLoadHandler(deps.IngestUC, deps.LoadParser)
	api.Get("/loads", requireAuth, loadHandler.List)
	sync := api.Group("/sync", requireAuth)
	sync.Post("/loads", loadHandler.Sync)
	sync.Post("/loads/xlsx", loadHandler.SyncXLSX)

	// Facturación
	bill := api.Group("/billing", requireAuth)
	billingHandler := NewBillingHandler(deps.StagingUC, deps.ReportUC)
	bill.Put("/overrides", billingHandler.SetOverride)
	bill.Delete("/overrides/:load_uid/:sku", billingHandler.ClearOverride)
	bill.Get("/:month/report.pdf", billingHandler.Report)
	bill.Get("/:month", billingHandler.Get)

	// Cierres (cerrar requiere admin)
	closings := api.Group("/closings", requireAuth)
	closingHandler := NewClosingHandler(deps.ClosingUC)
	closings.Get("/", closingHandler.List)
	closings.Get("/:month", closingHandler.Status)
	closings.Post("/:month/close", RequireRole(entity.RoleAdmin), closingHandler.Close)

	// Estadísticas
	statsHandler := NewStatsHandler(deps.StatsUC)
	api.Get("/stats", requireAuth, statsHandler.Get)
}
