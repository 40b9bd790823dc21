/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       The planner frontend runs on a separate dev origin

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/leave/calculate", h.CalculateLeave)
		r.Post("/economy/compare", h.CompareEconomy)
		r.Get("/holidays", h.ListHolidays)

		r.Route("/plans/{id}", func(r chi.Router) {
			r.Put("/", h.SavePlan)
			r.Get("/", h.GetPlan)
			r.Delete("/", h.DeletePlan)

			r.Post("/periods", h.AddPeriod)
			r.Put("/periods/{pid}", h.UpdatePeriod)
			r.Delete("/periods/{pid}", h.DeletePeriod)
			r.Post("/undo", h.UndoPeriod)
			r.Post("/reconcile", h.ReconcilePlan)
			r.Get("/validate", h.ValidatePlan)
		})
	})

	return r
}
