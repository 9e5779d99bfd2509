package api

import (
	"net/http"

	"github.com/ignite/adwizard/internal/currency"
)

type convertRequest struct {
	AmountUSD float64 `json:"amount_usd"`
	Currency  string  `json:"currency"`
}

// ConvertCurrency converts a USD budget to the display currency. Unsupported
// codes are not an error: the service falls back to a 1.0 rate so the wizard
// keeps working with USD figures.
func (h *Handlers) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AmountUSD < 0 {
		respondError(w, http.StatusBadRequest, "amount_usd cannot be negative")
		return
	}

	h.currency.Refresh(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"amount_usd":     req.AmountUSD,
		"currency":       req.Currency,
		"display_amount": h.currency.Convert(req.AmountUSD, req.Currency),
		"rate":           h.currency.Rate(req.Currency),
		"supported":      currency.Supported(req.Currency),
	})
}

// ListCurrencies returns the supported display currencies.
func (h *Handlers) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"currencies": currency.Codes(),
	})
}
