package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fintrellis/assetbook/internal/adapter/http/handler"
	"github.com/fintrellis/assetbook/internal/adapter/http/middleware"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AssetHandler        *handler.AssetHandler
	LifecycleHandler    *handler.LifecycleHandler
	DepreciationHandler *handler.DepreciationHandler
	DisposalHandler     *handler.DisposalHandler
	SettingHandler      *handler.SettingHandler
	TypeHandler         *handler.TypeHandler
	AccountHandler      *handler.AccountHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	Logger              zerolog.Logger
	RateLimit           float64
	RateBurst           int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// All API routes act on behalf of a gateway-authenticated user.
		r.Use(middleware.RequireUser)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Assets and their lifecycle
		r.Route("/assets", func(r chi.Router) {
			r.Post("/", cfg.AssetHandler.Create)
			r.Get("/", cfg.AssetHandler.List)
			r.Delete("/", cfg.AssetHandler.Delete)
			r.Get("/counts", cfg.AssetHandler.Counts)
			r.Post("/register", cfg.LifecycleHandler.Register)
			r.Post("/draft", cfg.LifecycleHandler.Draft)

			r.Get("/{id}", cfg.AssetHandler.Get)
			r.Get("/{id}/entries", cfg.DepreciationHandler.Entries)
			r.Post("/{id}/dispose", cfg.DisposalHandler.Dispose)
			r.Post("/{id}/dispose/preview", cfg.DisposalHandler.Preview)
			r.Get("/{id}/disposal", cfg.DisposalHandler.Get)
			r.Post("/{id}/undispose", cfg.DisposalHandler.Undispose)
		})

		// Depreciation runs
		r.Route("/depreciation", func(r chi.Router) {
			r.Post("/run", cfg.DepreciationHandler.Run)
			r.Post("/rollback", cfg.DepreciationHandler.Rollback)
		})

		// Register settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingHandler.Get)
			r.Put("/", cfg.SettingHandler.Upsert)
		})

		// Asset types
		r.Route("/types", func(r chi.Router) {
			r.Post("/", cfg.TypeHandler.Create)
			r.Get("/", cfg.TypeHandler.List)
			r.Get("/{id}", cfg.TypeHandler.Get)
			r.Put("/{id}", cfg.TypeHandler.Update)
		})

		// Posting accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
		})
	})

	return r
}
