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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Crm-api/internal/application/auth"
	appcalendar "github.com/jhoicas/Crm-api/internal/application/calendar"
	appsales "github.com/jhoicas/Crm-api/internal/application/sales"
	"github.com/jhoicas/Crm-api/internal/application/usecase"
	"github.com/jhoicas/Crm-api/internal/infrastructure/oauth"
	infrapdf "github.com/jhoicas/Crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Crm-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/Crm-api/internal/interfaces/http"
	"github.com/jhoicas/Crm-api/pkg/config"
	"github.com/jhoicas/Crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	taxRate, err := decimal.NewFromString(cfg.Sales.TaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("tax_rate", cfg.Sales.TaxRate).Msg("SALES_TAX_RATE inválido")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	apiKeyRepo := postgres.NewAPIKeyRepository(pool)
	pipelineRepo := postgres.NewPipelineRepository(pool)
	stageRepo := postgres.NewStageRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	businessUC := usecase.NewBusinessUseCase(businessRepo)
	pipelineUC := usecase.NewPipelineUseCase(pipelineRepo, stageRepo, dealRepo, metricsRepo)
	stageUC := usecase.NewStageUseCase(stageRepo, txRunner)
	dealUC := usecase.NewDealUseCase(dealRepo, stageRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)

	// Punto de venta: carrito en memoria + checkout transaccional + recibo PDF.
	cartUC := appsales.NewCartUseCase(productRepo, taxRate)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	checkoutUC := appsales.NewCheckoutUseCase(cartUC, txRunner, saleRepo, businessRepo, receiptGen)

	// Integración de calendario: OAuth del lado del servidor.
	calendarClient := oauth.NewCalendarClient(cfg.Calendar)
	stateStore := oauth.NewStateStore(10 * time.Minute)
	calendarUC := appcalendar.NewCalendarUseCase(calendarClient, stateStore, apiKeyRepo)

	// Invalidación en tiempo real: LISTEN en PostgreSQL → hub websocket.
	hub := realtime.NewHub(log)
	listener := postgres.NewListener(pool, log)
	go listener.Listen(ctx, hub.Broadcast)

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
		Title:    "CRM Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: businessUC,
		PipelineUC: pipelineUC,
		StageUC:    stageUC,
		DealUC:     dealUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		CalendarUC: calendarUC,
		Hub:        hub,
		JWTSecret:  cfg.JWT.Secret,
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
