package api

import (
	"net/http"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/forecast"
)

type forecastRequest struct {
	BudgetUSD    float64  `json:"budget_usd"`
	CampaignType string   `json:"campaign_type"`
	Locations    []string `json:"locations"`
	Keywords     []string `json:"keywords"`
	WebsiteURL   string   `json:"website_url"`
	VideoSubtype string   `json:"video_subtype"`
	AppName      string   `json:"app_name"`
	AppGenre     string   `json:"app_genre"`
	LiveCPC      float64  `json:"live_cpc"`
}

// GetForecast returns the monthly performance estimate for a budget. The
// calculator itself never fails, so the only error paths are input shape.
func (h *Handlers) GetForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.BudgetUSD <= 0 {
		respondError(w, http.StatusBadRequest, "budget_usd must be positive")
		return
	}
	ct := domain.CampaignType(req.CampaignType)
	if !ct.Valid() {
		respondError(w, http.StatusBadRequest, "unknown campaign_type")
		return
	}

	est := h.calculator.Forecast(r.Context(), forecast.Input{
		BudgetUSD:    req.BudgetUSD,
		CampaignType: ct,
		Locations:    req.Locations,
		Keywords:     req.Keywords,
		WebsiteURL:   req.WebsiteURL,
		VideoSubtype: req.VideoSubtype,
		AppName:      req.AppName,
		AppGenre:     req.AppGenre,
		LiveCPC:      req.LiveCPC,
	})
	respondJSON(w, http.StatusOK, est)
}
