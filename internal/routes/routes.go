package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wanderhub/wanderhub/internal/auth"
	"github.com/wanderhub/wanderhub/internal/cart"
	"github.com/wanderhub/wanderhub/internal/config"
	"github.com/wanderhub/wanderhub/internal/middleware"
	"github.com/wanderhub/wanderhub/internal/notification"
	"github.com/wanderhub/wanderhub/internal/session"
	"github.com/wanderhub/wanderhub/internal/store"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce a durable backend outside of dev, even though main also checks.
	if !d.Cfg.IsDev() && d.DB == nil && d.Cache == nil {
		return fmt.Errorf("postgres or redis is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backend: Postgres preferred, then Redis, then the
	// in-memory dev fallback.
	var backend store.Store
	switch {
	case d.DB != nil:
		pg := store.NewPostgres(d.DB)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("ensure kv schema: %w", err)
		}
		backend = pg
	case d.Cache != nil:
		backend = store.NewRedis(d.Cache)
	default:
		backend = store.NewMemory()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	records := session.NewRecords(backend, d.Logger)
	sessions, err := session.NewService(records, d.Cfg.Credentials, notifier, d.Logger)
	if err != nil {
		return err
	}
	if _, err := sessions.Restore(context.Background()); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	tokens := auth.NewService(d.Cfg, sessions)
	basket := cart.New(notifier)

	authHandler := auth.NewHandler(sessions, tokens)
	sessionHandler := session.NewHandler(sessions)
	cartHandler := cart.NewHandler(basket)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	authmw := middleware.SessionAuth(tokens, sessions)
	protected := api.Group("", authmw)
	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterSessionRoutes(protected, sessionHandler, idem)
	RegisterCartRoutes(protected, cartHandler)

	return nil
}
