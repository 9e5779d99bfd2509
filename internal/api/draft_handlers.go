package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/service/drafts"
)

func (h *Handlers) requireDrafts(w http.ResponseWriter) bool {
	if h.drafts == nil {
		respondError(w, http.StatusServiceUnavailable, "draft persistence is not configured")
		return false
	}
	return true
}

// ListDrafts returns the user's saved wizard sessions.
func (h *Handlers) ListDrafts(w http.ResponseWriter, r *http.Request) {
	if !h.requireDrafts(w) {
		return
	}
	out, err := h.drafts.ListByUser(r.Context(), userID(r))
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	if out == nil {
		out = []domain.CampaignDraft{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"drafts": out, "total": len(out)})
}

// GetDraft returns a single draft.
func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	if !h.requireDrafts(w) {
		return
	}
	d, err := h.drafts.Get(r.Context(), userID(r), chi.URLParam(r, "draftID"))
	if errors.Is(err, drafts.ErrNotFound) {
		respondError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// CreateDraft starts a new wizard session.
func (h *Handlers) CreateDraft(w http.ResponseWriter, r *http.Request) {
	if !h.requireDrafts(w) {
		return
	}
	var input drafts.CreateInput
	if !decodeBody(w, r, &input) {
		return
	}
	d, err := h.drafts.Create(r.Context(), userID(r), input)
	if errors.Is(err, drafts.ErrInvalidType) {
		respondError(w, http.StatusBadRequest, "unknown campaign type")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

type draftPatch struct {
	Name            *string   `json:"name"`
	WebsiteURL      *string   `json:"website_url"`
	CampaignType    *string   `json:"campaign_type"`
	Keywords        *[]string `json:"keywords"`
	Locations       *[]string `json:"locations"`
	BudgetUSD       *float64  `json:"budget_usd"`
	DisplayCurrency *string   `json:"display_currency"`
	VideoSubtype    *string   `json:"video_subtype"`
	AppName         *string   `json:"app_name"`
	AppGenre        *string   `json:"app_genre"`
}

// UpdateDraft patches a wizard step's fields onto the draft.
func (h *Handlers) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	if !h.requireDrafts(w) {
		return
	}
	var patch draftPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	u := drafts.UpdateFields{
		Name:            patch.Name,
		WebsiteURL:      patch.WebsiteURL,
		Keywords:        patch.Keywords,
		Locations:       patch.Locations,
		BudgetUSD:       patch.BudgetUSD,
		DisplayCurrency: patch.DisplayCurrency,
		VideoSubtype:    patch.VideoSubtype,
		AppName:         patch.AppName,
		AppGenre:        patch.AppGenre,
	}
	if patch.CampaignType != nil {
		ct := domain.CampaignType(*patch.CampaignType)
		u.CampaignType = &ct
	}

	err := h.drafts.Update(r.Context(), userID(r), chi.URLParam(r, "draftID"), u)
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		respondError(w, http.StatusNotFound, "draft not found")
	case errors.Is(err, drafts.ErrInvalidType):
		respondError(w, http.StatusBadRequest, "unknown campaign type")
	case err != nil:
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteDraft removes a saved wizard session.
func (h *Handlers) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if !h.requireDrafts(w) {
		return
	}
	err := h.drafts.Delete(r.Context(), userID(r), chi.URLParam(r, "draftID"))
	if errors.Is(err, drafts.ErrNotFound) {
		respondError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
