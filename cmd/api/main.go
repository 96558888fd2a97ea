package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pitchapi/internal/analysis"
	"pitchapi/internal/config"
	"pitchapi/internal/database"
	"pitchapi/internal/database/migration"
	handlers "pitchapi/internal/http/handler"
	"pitchapi/internal/http/middleware"
	"pitchapi/internal/logger"
	"pitchapi/internal/metrics"
	"pitchapi/internal/otel"
	"pitchapi/internal/repository/postgres"
	"pitchapi/internal/resilience"
	"pitchapi/internal/service"
	"pitchapi/internal/storage"
	"pitchapi/internal/validator"
)

// @title Startup Submission API
// @version 1.0
// @description Accepts startup pitch documents, validates them and produces AI investment analyses.
// @BasePath /
func main() {
	if err := run(); err != nil {
		logger.Error(context.Background(), "server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Location: loc})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipeline, err := metrics.NewPipeline(reg)
	if err != nil {
		return fmt.Errorf("register pipeline metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	v := validator.New()
	exec := resilience.NewExecutor(resilience.PolicyFromConfig(cfg.Resilience))
	analyst, err := analysis.NewGeminiAnalyst(ctx, cfg.Gemini, v.Extractor(), exec)
	if err != nil {
		return fmt.Errorf("init analyst: %w", err)
	}
	defer analyst.Close()

	repo := postgres.NewSubmissionPostgres(db)
	subSvc := service.NewSubmissionService(objStore, repo, v, pipeline, loc)
	anaSvc := service.NewAnalysisService(objStore, repo, v, analyst, pipeline)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		// Startup names in /api/analyze/:startup_name may contain spaces.
		UnescapePath: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(httpMetrics.Handler())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	handlers.RegisterRoutes(app, db, subSvc, anaSvc)
	handlers.RegisterSwagger(app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server_starting", "addr", ":"+cfg.Port, "app_host", cfg.AppHost)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "server_stopping")
	return app.ShutdownWithTimeout(10 * time.Second)
}
