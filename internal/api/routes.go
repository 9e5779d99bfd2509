package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - the wizard frontend runs on its own origin in development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Budget forecasting
		r.Post("/forecast", h.GetForecast)

		// Currency display conversion
		r.Route("/currency", func(r chi.Router) {
			r.Get("/", h.ListCurrencies)
			r.Post("/convert", h.ConvertCurrency)
		})

		// Billing accounts for the account picker
		r.Get("/accounts", h.ListAccounts)

		// Publish state machine
		r.Route("/publish", func(r chi.Router) {
			r.Post("/", h.PublishCampaign)
			r.Get("/status", h.PublishStatus)
			r.Post("/reset", h.PublishReset)
		})

		// Wizard drafts
		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", h.ListDrafts)
			r.Post("/", h.CreateDraft)
			r.Get("/{draftID}", h.GetDraft)
			r.Patch("/{draftID}", h.UpdateDraft)
			r.Delete("/{draftID}", h.DeleteDraft)
		})
	})

	return r
}
