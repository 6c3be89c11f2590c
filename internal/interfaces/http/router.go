package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chamstek/factory-ops/internal/application/analytics"
	"github.com/chamstek/factory-ops/internal/application/auth"
	"github.com/chamstek/factory-ops/internal/application/inventory"
	"github.com/chamstek/factory-ops/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	OrderUC          *orders.OrderUseCase
	DashboardUC      *analytics.DashboardUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.SearchMovements)
	invGroup.Post("/production", inventoryHandler.RegisterProduction)
	invGroup.Put("/production/:id", inventoryHandler.EditProduction)
	invGroup.Delete("/production/:id", inventoryHandler.DeleteProduction)
	invGroup.Post("/stock-count", inventoryHandler.StockCount)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	protected.Get("/items", inventoryHandler.ListItems)

	// Pedidos (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Confirm)
	ordersGroup.Get("/", orderHandler.Search)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/resplit", orderHandler.Resplit)
	ordersGroup.Put("/:id/lots", orderHandler.AssignLots)
	ordersGroup.Post("/:id/ship", orderHandler.Ship)
	ordersGroup.Post("/:id/cancel-shipment", orderHandler.CancelShipment)

	// Tablero (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
