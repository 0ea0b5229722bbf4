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
	"github.com/prometheus/client_golang/prometheus"

	appavatax "github.com/jhoicas/avatax-connector/internal/application/avatax"
	"github.com/jhoicas/avatax-connector/internal/application/auth"
	"github.com/jhoicas/avatax-connector/internal/domain/repository"
	infraavatax "github.com/jhoicas/avatax-connector/internal/infrastructure/avatax"
	"github.com/jhoicas/avatax-connector/internal/infrastructure/metrics"
	"github.com/jhoicas/avatax-connector/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/avatax-connector/internal/infrastructure/redis"
	"github.com/jhoicas/avatax-connector/internal/interfaces/events"
	httpRouter "github.com/jhoicas/avatax-connector/internal/interfaces/http"
	"github.com/jhoicas/avatax-connector/pkg/config"
	"github.com/jhoicas/avatax-connector/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	creditMemoRepo := postgres.NewCreditMemoRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	historyRepo := postgres.NewOrderHistoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeConfigRepo := postgres.NewStoreConfigRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Bandera de error: PostgreSQL por defecto, Redis si ERROR_FLAG_BACKEND=redis
	var flags repository.ErrorFlagStore = postgres.NewErrorFlagRepository(pool)
	if cfg.Platform.ErrorFlagBackend == "redis" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		flags = infraredis.NewErrorFlagStore(rdb)
	}
	log.Info().Str("backend", cfg.Platform.ErrorFlagBackend).Msg("bandera de error")

	collector := metrics.New(prometheus.DefaultRegisterer)
	transport := infraavatax.NewRESTClient(cfg.AvaTax.Timeout, cfg.App.Name)

	history, variant := appavatax.NewHistoryAppender(cfg.Platform.Version, historyRepo)
	log.Info().Str("platform_version", cfg.Platform.Version).Str("history", variant).Msg("historial de órdenes")

	resolver := appavatax.NewConfigResolver(storeConfigRepo, appavatax.Defaults{
		ServiceURL:  cfg.AvaTax.URL,
		AccountID:   cfg.AvaTax.AccountID,
		LicenseKey:  cfg.AvaTax.LicenseKey,
		CompanyCode: cfg.AvaTax.CompanyCode,
		Timezone:    cfg.AvaTax.Timezone,
		Locale:      cfg.AvaTax.Locale,
	})
	sender := appavatax.NewSender(transport, auditRepo, flags, collector, log)
	submissionUC := appavatax.NewSubmissionUseCase(appavatax.SubmissionDeps{
		Invoices:    invoiceRepo,
		CreditMemos: creditMemoRepo,
		Orders:      orderRepo,
		Configs:     resolver,
		Assembler:   appavatax.NewAssembler(productRepo, time.Now),
		Sender:      sender,
		Reconciler:  appavatax.NewReconciler(history, collector, log),
		Log:         log,
	})
	statusUC := appavatax.NewStatusUseCase(resolver, transport, sender, flags, auditRepo, collector)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Consumidor de eventos: opcional, solo si NATS_URL está definido
	var consumer *events.Consumer
	if cfg.NATS.URL != "" {
		consumer = events.NewConsumer(submissionUC, cfg.AvaTax.Timeout+5*time.Second, log)
		if err := consumer.Start(cfg.NATS, cfg.App.Name); err != nil {
			log.Fatal().Err(err).Msg("consumidor NATS")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AvaTax.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AvaTax Connector API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Submissions: submissionUC,
		Status:      statusUC,
		Gatherer:    prometheus.DefaultGatherer,
		JWTSecret:   cfg.JWT.Secret,
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

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del consumidor NATS")
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
