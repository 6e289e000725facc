package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-wrap-credits/internal/handlers"
	"github.com/sbilibin2017/gw-wrap-credits/internal/jwt"
	"github.com/sbilibin2017/gw-wrap-credits/internal/middlewares"
	"github.com/sbilibin2017/gw-wrap-credits/internal/notify"
)

// AuthService logs users in and out and resolves session cookies.
type AuthService interface {
	middlewares.SessionResolver
	handlers.Loginer
	handlers.Logouter
}

// CreditService serves balances, the ledger and admin top-ups.
type CreditService interface {
	handlers.AvailableBalancer
	handlers.LedgerLister
	handlers.CreditAdmin
}

// TaskService serves generation tasks for users, admins and event streams.
type TaskService interface {
	handlers.TaskCreator
	handlers.HistoryReader
	handlers.TaskStreamer
	handlers.Refunder
	handlers.BulkRefunder
	handlers.TaskLister
	handlers.TaskStatser
	handlers.TaskSweeper
}

// Config holds the HTTP-level settings of the router.
type Config struct {
	Cookie         handlers.CookieConfig
	GenerationCost int64
	Heartbeat      time.Duration
	AllowedOrigins []string
	SwaggerURL     string
}

// Deps are the services the routes are served by.
type Deps struct {
	Auth       AuthService
	Credits    CreditService
	Tasks      TaskService
	Tracker    handlers.StepLogger
	Subscriber notify.Subscriber
	Tokener    middlewares.Tokener
}

// New builds the HTTP handler of the service. All API routes live under /api.
func New(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares.SessionMiddleware(deps.Auth, cfg.Cookie.Name))

		r.Post("/auth/login", handlers.NewLoginHandler(deps.Auth, cfg.Cookie))
		r.Post("/auth/logout", handlers.NewLogoutHandler(deps.Auth, cfg.Cookie))
		r.Get("/credits/balance", handlers.NewGetBalanceHandler(deps.Credits))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireUser)
			r.Get("/credits/ledger", handlers.NewListLedgerHandler(deps.Credits))
			r.Post("/wrap/tasks", handlers.NewCreateTaskHandler(deps.Tasks, cfg.GenerationCost))
			r.Get("/wrap/history", handlers.NewHistoryHandler(deps.Tasks))
		})

		// The handler answers 401 itself so anonymous clients get the same body shape.
		r.Get("/wrap/events", handlers.NewTaskEventsHandler(deps.Tasks, deps.Subscriber, cfg.Heartbeat))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.RequireAdmin(deps.Tokener))
			r.Post("/tasks/refund", handlers.NewAdminRefundHandler(deps.Tasks))
			r.Post("/tasks/refund-failed", handlers.NewAdminRefundFailedHandler(deps.Tasks))
			r.Get("/tasks", handlers.NewAdminListTasksHandler(deps.Tasks))
			r.Get("/tasks/stats", handlers.NewAdminTaskStatsHandler(deps.Tasks))
			r.Get("/credits", handlers.NewAdminListCreditsHandler(deps.Credits))
			r.Post("/credits", handlers.NewAdminTopUpHandler(deps.Credits))
		})

		r.Route("/internal", func(r chi.Router) {
			r.Use(middlewares.RequireService(deps.Tokener, jwt.RoleWorker, jwt.RoleAdmin))
			r.Post("/tasks/{taskId}/steps", handlers.NewLogStepHandler(deps.Tracker))
			r.Post("/tasks/sweep", handlers.NewSweepHandler(deps.Tasks))
		})
	})

	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
	}

	if len(cfg.AllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(r)
}
