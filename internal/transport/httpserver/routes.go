package httpserver

import (
	"net/http"

	"tiptrip-go/internal/config"
	"tiptrip-go/internal/metrics"
	"tiptrip-go/internal/transport/httpserver/handler"
	"tiptrip-go/internal/transport/httpserver/middleware"
	"tiptrip-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route. A nil registry disables /metrics.
func NewRouter(cfg config.Config, handlers *handler.Handlers, users middleware.Authenticator, registry *metrics.Registry, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	if registry != nil {
		r.Use(middleware.Metrics(registry))
	}
	r.Use(chimw.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.NewCORS(cfg.CORS.AllowedOrigins))

	r.Get("/health", handlers.Health)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", registry.Handler())
	}

	auth := middleware.NewTokenAuth(users, log)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/users", handlers.CreateUser)
		r.Get("/users", handlers.ListUsers)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/trips", handlers.CreateTrip)
			r.Get("/trips", handlers.ListTrips)
			r.Get("/trips/{hash}", handlers.GetTrip)
			r.Put("/trips/{hash}", handlers.UpdateTrip)

			r.Get("/trips/{hash}/members", handlers.ListMembers)
			r.Post("/trips/{hash}/members", handlers.AddMember)
			r.Put("/trips/{hash}/members/{user_id}", handlers.UpdateMember)
			r.Delete("/trips/{hash}/members/{user_id}", handlers.RemoveMember)

			r.Post("/trips/{hash}/dates/generate", handlers.GenerateDates)
			r.Get("/trips/{hash}/dates", handlers.ListDates)
			r.Post("/trips/{hash}/availability", handlers.UpdateAvailability)
			r.Get("/trips/{hash}/calendar", handlers.GetCalendar)

			r.Post("/trips/{hash}/expenses", handlers.CreateExpense)
			r.Get("/trips/{hash}/expenses", handlers.ListExpenses)
			r.Get("/trips/{hash}/settlements", handlers.GetSettlements)
			r.Get("/trips/{hash}/balances", handlers.GetBalances)
		})
	})

	return r
}
