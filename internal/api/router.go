package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/vigia/internal/alert"
	"github.com/saturnino-fabrica-de-software/vigia/internal/analysis"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/vigia/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/vigia/internal/audit"
	"github.com/saturnino-fabrica-de-software/vigia/internal/cache"
	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/service"
	"github.com/saturnino-fabrica-de-software/vigia/internal/stats"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
	"github.com/saturnino-fabrica-de-software/vigia/internal/webhook"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

type Dependencies struct {
	SessionRepo     *repository.SessionRepository
	ObservationRepo *repository.ObservationRepository
	APIKeyRepo      *repository.APIKeyRepository
	AlertEventRepo  *repository.AlertEventRepository
	Detectors       vision.DetectorSet
	LastUsedWorker  *middleware.LastUsedWorker
	DB              *pgxpool.Pool
	Config          *config.Config
}

type Router struct {
	app               *fiber.App
	logger            *slog.Logger
	deps              *Dependencies
	rateLimiter       *middleware.RateLimiter
	wsHub             *ws.Hub
	alertWorker       *alert.Worker
	cancelAlertWorker context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Vigia API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson(), swagger.WithPrefix("/docs"))

	// Health check endpoints (no auth required)
	var db handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		db = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(db)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/health/ready", healthHandler.Ready)

	// API v1 group with authentication
	v1 := r.app.Group("/v1")

	// Only configure authenticated routes if dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		// WebSocket hub for live session monitors
		r.wsHub = ws.NewHub()
		go r.wsHub.Run()

		// Monitor token service (JWT, one session per token)
		tokens := ws.NewTokenService(cfg.MonitorTokenSecret, "vigia-api", cfg.MonitorTokenTTL)

		// Alert engine with the built-in proctoring rules, plus the sweeper
		// that drops windows of sessions that stopped sending frames
		engine := alert.NewEngine(nil)
		r.alertWorker = alert.NewWorker(engine, r.logger, 30*time.Second)

		workerCtx, cancel := context.WithCancel(context.Background())
		r.cancelAlertWorker = cancel
		go r.alertWorker.Start(workerCtx)

		// Webhook delivery is optional; without a URL alerts still reach the
		// database and the websocket monitors
		var sender *webhook.Sender
		if cfg.AlertWebhookURL != "" {
			sender = webhook.NewSender(cfg.AlertWebhookURL, cfg.AlertWebhookSecret)
		}
		notifier := alert.NewNotifier(r.deps.AlertEventRepo, sender, r.wsHub, r.logger)

		// Trilha de auditoria LGPD para operações sobre dados do aluno
		auditLogger := audit.NewSlogLogger(r.logger)

		// Auth middleware
		authDeps := middleware.AuthDependencies{
			APIKeyRepo:     r.deps.APIKeyRepo,
			Logger:         r.logger,
			LastUsedWorker: r.deps.LastUsedWorker,
		}
		v1.Use(middleware.Auth(authDeps))

		// Rate limiting (per API key) - must come after auth to have key context
		limiterConfig := middleware.DefaultRateLimiterConfig()
		limiterConfig.PerEndpoint = middleware.FrameRateLimits()
		r.rateLimiter = middleware.NewRateLimiter(limiterConfig)
		v1.Use(r.rateLimiter.Handler())

		// Frame analysis service
		pipeline := analysis.NewPipeline(r.deps.Detectors)
		proctorService := service.NewProctorService(
			pipeline,
			r.deps.Detectors.People,
			r.deps.ObservationRepo,
			engine,
			notifier,
			r.wsHub,
			cfg.SnapshotDir,
			r.logger,
			service.WithProctorAudit(auditLogger),
		)

		// Frame handler and routes
		frameHandler := handler.NewFrameHandler(proctorService, r.logger)
		v1.Post("/frames/pose", frameHandler.AnalyzePose)
		v1.Post("/frames/attention", frameHandler.CheckAttention)
		v1.Post("/frames/people", frameHandler.CountPeople)
		v1.Post("/frames/batch", frameHandler.AnalyzeBatch)
		v1.Post("/snapshots", frameHandler.SaveSnapshot)

		// Session service over the aggregated report builder. Relatórios são
		// servidos de um cache curto no próprio Postgres para aguentar o
		// polling dos painéis.
		statsService := stats.NewService(
			stats.NewRepository(r.deps.DB),
			r.deps.SessionRepo,
			r.deps.AlertEventRepo,
			cache.NewPGCache(r.deps.DB),
			r.logger,
		)
		sessionService := service.NewSessionService(
			r.deps.SessionRepo,
			statsService,
			engine,
			r.wsHub,
			tokens,
			r.logger,
			service.WithSessionAudit(auditLogger),
		)

		// Session handler and routes
		sessionHandler := handler.NewSessionHandler(sessionService, r.logger)
		v1.Post("/sessions", sessionHandler.Create)
		v1.Get("/sessions", sessionHandler.List)
		v1.Get("/sessions/:id", sessionHandler.Get)
		v1.Post("/sessions/:id/close", sessionHandler.Close)
		v1.Get("/sessions/:id/report", sessionHandler.Report)
		v1.Post("/sessions/:id/monitor-token", sessionHandler.MonitorToken)

		// WebSocket monitor endpoint. Authenticated by monitor token, not by
		// API key, so it lives outside the v1 group.
		r.app.Get("/ws/monitor", ws.UpgradeMiddleware(), ws.TokenAuth(tokens), ws.Handler(r.wsHub))
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop alert window sweeper
	if r.cancelAlertWorker != nil {
		r.cancelAlertWorker()
	}

	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
