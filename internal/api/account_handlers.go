package api

import (
	"net/http"
)

// ListAccounts returns the visible billing accounts for the wizard's
// account picker. ?refresh=true forces a re-fetch past the session cache.
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"

	visible, err := h.reconciler.List(r.Context(), force)
	if err != nil {
		respondSafeError(w, http.StatusBadGateway, err, safeErrorMessage(http.StatusBadGateway, err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": visible,
		"total":    len(visible),
	})
}
