package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"course-service/internal/auth"
	"course-service/internal/catalog"
	"course-service/internal/config"
	"course-service/internal/db"
	"course-service/internal/events"
	"course-service/internal/health"
	"course-service/internal/logger"
	"course-service/internal/metrics"
	"course-service/internal/middleware"
	"course-service/internal/table"
	"course-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *bun.DB
	producer events.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	app.database = db.New(cfg.Database)

	ctx := context.Background()
	err = db.RunMigrations(ctx, app.database,
		(*user.User)(nil),
		(*catalog.Course)(nil),
		(*catalog.Lesson)(nil),
		(*catalog.Enrollment)(nil),
		(*catalog.Payment)(nil),
		(*catalog.Review)(nil),
	)
	if err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Registration event producer (optional, chosen by config)
	app.producer = newProducer(cfg.Messaging, slogLogger)

	// Auth endpoints
	userRepo := user.NewRepository(app.database)
	authService := auth.NewService(userRepo, app.producer, slogLogger)
	authHandler := auth.NewHandler(authService, slogLogger, m)
	authHandler.RegisterRoutes(app.router)

	// Generic table endpoints plus / and /test-db
	tableRepo := table.NewRepository(app.database)
	tableHandler := table.NewHandler(tableRepo, slogLogger, m, ServiceName, Version)
	tableHandler.RegisterRoutes(app.router)

	// Scoped catalog endpoints
	catalogRepo := catalog.NewRepository(app.database)
	catalogHandler := catalog.NewHandler(catalogRepo, slogLogger, m)
	catalogHandler.RegisterRoutes(app.router)

	slogLogger.Info("application initialized successfully")

	return app
}

func newProducer(cfg config.MessagingConfig, logger *slog.Logger) events.Producer {
	switch cfg.Backend {
	case "nats":
		producer, err := events.NewNATSProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := events.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	default:
		logger.Info("no messaging backend configured, registration events disabled")
		return nil
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close producer", "error", err)
		}
	}
	db.Close(a.database)

	return a.server.Shutdown(ctx)
}
