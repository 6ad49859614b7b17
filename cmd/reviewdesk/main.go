package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewdesk/docs"
	"reviewdesk/internal/config"
	"reviewdesk/internal/database"
	"reviewdesk/internal/database/migration"
	handlers "reviewdesk/internal/http/handler"
	"reviewdesk/internal/http/middleware"
	"reviewdesk/internal/logging"
	"reviewdesk/internal/otel"
	"reviewdesk/internal/repository/postgres"
	"reviewdesk/internal/service"
	"reviewdesk/internal/storage"
	"reviewdesk/internal/workflow"
)

// @title Review Desk API
// @version 1.0
// @description Console for the document review workflow service.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, time.Local)

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing_init_failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	wf, err := workflow.New(workflow.Config{
		BaseURL: cfg.Service.BaseURL,
		Timeout: cfg.Service.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.Service.BaseURL).Msg("invalid_review_service_url")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics_init_failed")
	}
	deskMetrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics_init_failed")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(deskMetrics),
	}

	// The journal and the archive are optional; each is wired only when configured.
	var db *sql.DB
	if cfg.Journal.Enabled() {
		db, err = database.OpenJournal(ctx, cfg.Journal)
		if err != nil {
			log.Fatal().Err(err).Msg("journal_connect_failed")
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Journal.Host); err != nil {
			log.Fatal().Err(err).Msg("journal_migration_failed")
		}
		opts = append(opts, service.WithJournal(postgres.NewActivityPostgres(db)))
	}

	if cfg.Archive.Enabled() {
		store, err := storage.NewMinIO(ctx, cfg.Archive)
		if err != nil {
			log.Fatal().Err(err).Msg("archive_init_failed")
		}
		opts = append(opts, service.WithArchive(store))
	}

	desk := service.NewDeskService(wf, opts...)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 << 20,
	})

	app.Use(middleware.RequestID())
	// otelfiber restores the previous user context when it returns, so the
	// access log must run inside it to see the request span.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, desk)

	// Swagger UI with dynamic host and scheme
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	log.Info().
		Str("addr", ":"+cfg.Port).
		Str("review_service", wf.BaseURL()).
		Bool("journal", db != nil).
		Bool("archive", cfg.Archive.Enabled()).
		Msg("console_starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server_stopped")
		os.Exit(1)
	}
}
