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

	appalloc "github.com/clix-soa/allocation-api/internal/application/allocation"
	"github.com/clix-soa/allocation-api/internal/application/auth"
	"github.com/clix-soa/allocation-api/internal/application/export"
	"github.com/clix-soa/allocation-api/internal/application/metrics"
	"github.com/clix-soa/allocation-api/internal/application/usecase"
	domainalloc "github.com/clix-soa/allocation-api/internal/domain/allocation"
	"github.com/clix-soa/allocation-api/internal/domain/scoring"
	infrapdf "github.com/clix-soa/allocation-api/internal/infrastructure/pdf"
	"github.com/clix-soa/allocation-api/internal/infrastructure/postgres"
	infraredis "github.com/clix-soa/allocation-api/internal/infrastructure/redis"
	httpRouter "github.com/clix-soa/allocation-api/internal/interfaces/http"
	"github.com/clix-soa/allocation-api/pkg/config"
	"github.com/clix-soa/allocation-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()
	runLocker := infraredis.NewRunLocker(rdb, time.Duration(cfg.Allocation.LockTTLSeconds)*time.Second)

	customerRepo := postgres.NewCustomerRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	metricRepo := postgres.NewCustomerMetricRepository(pool)
	allocRepo := postgres.NewAllocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	weights := scoring.Weights{
		Performance:       cfg.Allocation.PerformanceWeight,
		PaymentFrequency:  cfg.Allocation.PaymentFrequencyWeight,
		CreditPeriod:      cfg.Allocation.CreditPeriodWeight,
		StockAvailability: cfg.Allocation.StockWeight,
	}
	policy := domainalloc.Policy{
		MinPct: cfg.Allocation.MinAllocationPct,
		MaxPct: cfg.Allocation.MaxAllocationPct,
	}

	metricsUC := metrics.NewUseCase(customerRepo, paymentRepo, orderRepo, metricRepo, weights)
	allocationUC := appalloc.NewUseCase(txRunner, metricsUC, policy)
	exportUC := export.NewUseCase(allocRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, customerRepo, inventoryRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	sheets := infrapdf.NewAllocationSheetGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Allocation API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:   customerUC,
		InventoryUC:  inventoryUC,
		OrderUC:      orderUC,
		PaymentUC:    paymentUC,
		MetricsUC:    metricsUC,
		AllocationUC: allocationUC,
		ExportUC:     exportUC,
		AuthUC:       authUC,
		RunLocker:    runLocker,
		Sheets:       sheets,
		AllocRepo:    allocRepo,
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
