package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ignite/adwizard/internal/accounts"
	"github.com/ignite/adwizard/internal/config"
	"github.com/ignite/adwizard/internal/currency"
	"github.com/ignite/adwizard/internal/forecast"
	"github.com/ignite/adwizard/internal/publish"
	"github.com/ignite/adwizard/internal/service/drafts"
)

// Handlers contains all HTTP handlers for the wizard API.
type Handlers struct {
	currency     *currency.Service
	calculator   *forecast.Calculator
	reconciler   *accounts.Reconciler
	orchestrator *publish.Orchestrator
	drafts       *drafts.Service
	config       *config.Config

	started time.Time
}

// NewHandlers creates a Handlers instance. drafts may be nil when no
// database is configured; the draft routes then return 503.
func NewHandlers(
	cur *currency.Service,
	calc *forecast.Calculator,
	rec *accounts.Reconciler,
	orch *publish.Orchestrator,
	draftSvc *drafts.Service,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		currency:     cur,
		calculator:   calc,
		reconciler:   rec,
		orchestrator: orch,
		drafts:       draftSvc,
		config:       cfg,
		started:      time.Now(),
	}
}

// HealthCheck reports liveness and which optional collaborators are wired.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"drafts_enabled": h.drafts != nil,
	})
}

// userID resolves the acting user. The gateway in front of this service
// terminates auth and forwards the identity header.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
