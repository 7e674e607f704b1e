package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"realestateapi/docs"
	"realestateapi/internal/config"
	"realestateapi/internal/database"
	"realestateapi/internal/database/migration"
	"realestateapi/internal/events"
	"realestateapi/internal/health"
	handlers "realestateapi/internal/http/handler"
	"realestateapi/internal/http/middleware"
	"realestateapi/internal/logger"
	"realestateapi/internal/otel"
	"realestateapi/internal/repository"
	"realestateapi/internal/repository/mongodb"
	"realestateapi/internal/repository/postgres"
	"realestateapi/internal/seed"
	"realestateapi/internal/service"
	"realestateapi/internal/storage"
	"realestateapi/internal/validation"
)

// store bundles the repositories of the selected backend with its health check
// and a function releasing the connection.
type store struct {
	properties repository.PropertyRepository
	owners     repository.OwnerRepository
	check      health.Check
	close      func(context.Context) error
}

// @title Real Estate API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(sctx); err != nil {
			log.Error("store_close_failed", "error", err.Error())
		}
	}()

	if cfg.SeedData {
		if err := seed.Run(ctx, st.properties, st.owners, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// Object storage is optional; without it image uploads are rejected
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		log.Info("object_storage_ready", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.Bucket)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		p, err := events.NewAMQPPublisher(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		publisher = p
		log.Info("event_publisher_ready", "exchange", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	validator, err := validation.New()
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}

	propSvc := service.NewPropertyService(st.properties, st.owners, objStore, publisher, log)
	ownerSvc := service.NewOwnerService(st.owners)
	checker := health.NewChecker(st.check, health.SelfCheck())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware, outermost first
	app.Use(middleware.Recover(log))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	app.Use(middleware.Envelope())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, handlers.Dependencies{
		Properties: propSvc,
		Owners:     ownerSvc,
		Validator:  validator,
		Health:     checker,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_started", "addr", addr, "store", cfg.StoreDriver)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		// PostgreSQL connection (with pooling via database/sql)
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("store_connected", "driver", config.StorePostgres, "db_host", cfg.Database.Host)
		return &store{
			properties: postgres.NewPropertyPostgres(db),
			owners:     postgres.NewOwnerPostgres(db),
			check:      health.PostgresCheck(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil

	default:
		client, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Mongo.Database)
		if err := migration.EnsureIndexes(ctx, db, log); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("store_connected", "driver", config.StoreMongo, "db_name", cfg.Mongo.Database)
		return &store{
			properties: mongodb.NewPropertyMongo(db),
			owners:     mongodb.NewOwnerMongo(db),
			check:      health.MongoCheck(client),
			close:      client.Disconnect,
		}, nil
	}
}
