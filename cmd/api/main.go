package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	invdomain "github.com/jhoicas/stockalert-api/internal/domain/inventory"
	"github.com/jhoicas/stockalert-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stockalert-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockalert-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockalert-api/internal/interfaces/http"
	"github.com/jhoicas/stockalert-api/pkg/config"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(companyRepo, warehouseRepo)
	productUC := usecase.NewProductUseCase(txRunner, companyRepo, productRepo, warehouseRepo)
	supplierUC := usecase.NewSupplierUseCase(companyRepo, productRepo, supplierRepo)
	recordSaleUC := inventory.NewRecordSaleUseCase(txRunner, productRepo, warehouseRepo)

	lowStockOpts := []inventory.Option{inventory.WithLogger(log)}
	if cfg.Metrics.Enabled {
		alertMetrics, err := metrics.NewAlertMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		lowStockOpts = append(lowStockOpts, inventory.WithObserver(alertMetrics))
	}
	lowStockUC := inventory.NewLowStockUseCase(
		companyRepo, levelRepo, saleRepo, supplierRepo,
		inventory.LowStockConfig{
			Thresholds: invdomain.ThresholdPolicy{
				ByType:   cfg.Alerts.ThresholdsByType,
				Fallback: cfg.Alerts.FallbackThreshold,
			},
			DefaultRecentDays:   cfg.Alerts.RecentDays,
			DefaultLookbackDays: cfg.Alerts.LookbackDays,
		},
		lowStockOpts...,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockAlert API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		RecordSale:  recordSaleUC,
		LowStock:    lowStockUC,
		PDF:         infrapdf.NewMarotoPDFGenerator(),
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de empresa sin verificación de tenant")
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
