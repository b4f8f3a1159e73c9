package http

import (
	"github.com/gofiber/fiber/v2"

	appalloc "github.com/clix-soa/allocation-api/internal/application/allocation"
	"github.com/clix-soa/allocation-api/internal/application/auth"
	"github.com/clix-soa/allocation-api/internal/application/export"
	"github.com/clix-soa/allocation-api/internal/application/metrics"
	"github.com/clix-soa/allocation-api/internal/application/usecase"
	"github.com/clix-soa/allocation-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC   *usecase.CustomerUseCase
	InventoryUC  *usecase.InventoryUseCase
	OrderUC      *usecase.OrderUseCase
	PaymentUC    *usecase.PaymentUseCase
	MetricsUC    *metrics.UseCase
	AllocationUC *appalloc.UseCase
	ExportUC     *export.UseCase
	AuthUC       *auth.AuthUseCase

	RunLocker    RunLocker
	Sheets       SheetGenerator
	AllocRepo    repository.AllocationRepository
	OrderRepo    repository.OrderRepository
	CustomerRepo repository.CustomerRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido) + métricas por cliente
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/metrics", metricsHandler.GetByCustomer)
	customers.Post("/:id/metrics/recalculate", metricsHandler.Recalculate)

	// Métricas (batch, solo admin)
	protected.Post("/metrics/recalculate", AdminOnly(), metricsHandler.RecalculateAll)

	// Inventory (protegido)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/code/:code", inventoryHandler.GetByProductCode)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Delete("/:id", orderHandler.Delete)

	// Payments (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Allocations (protegido)
	allocations := protected.Group("/allocations")
	allocationHandler := NewAllocationHandler(
		deps.AllocationUC, deps.ExportUC, deps.RunLocker,
		deps.AllocRepo, deps.OrderRepo, deps.CustomerRepo, deps.Sheets,
	)
	allocations.Post("/run", allocationHandler.Run)
	allocations.Get("/", allocationHandler.List)
	allocations.Get("/export", allocationHandler.Export)
	orders.Get("/:id/allocations", allocationHandler.ListByOrder)
	orders.Get("/:id/allocation-sheet", allocationHandler.Sheet)
}
