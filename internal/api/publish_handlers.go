package api

import (
	"net/http"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/publish"
)

type publishRequest struct {
	CustomerID      string          `json:"customer_id"`
	DraftID         string          `json:"draft_id"`
	Name            string          `json:"name"`
	CampaignType    string          `json:"campaign_type"`
	Keywords        []string        `json:"keywords"`
	Locations       []string        `json:"locations"`
	BudgetUSD       float64         `json:"budget_usd"`
	DisplayCurrency string          `json:"display_currency"`
	Creative        domain.Creative `json:"creative"`
}

// outcomeStatus maps a publish outcome to the HTTP status the UI switches on.
func outcomeStatus(o publish.Outcome) int {
	switch o {
	case publish.OutcomeSuccess:
		return http.StatusOK
	case publish.OutcomeValidationError:
		return http.StatusBadRequest
	case publish.OutcomeAccountDisabled:
		return http.StatusConflict
	case publish.OutcomeNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// PublishCampaign runs the publish state machine for the assembled wizard
// state. The draft, when referenced, supplies any field the body leaves
// blank, so a resumed session can publish without re-sending every step.
func (h *Handlers) PublishCampaign(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if !decodeBody(w, r, &req) {
		return
	}

	draft := domain.CampaignDraft{
		Name:         req.Name,
		CampaignType: domain.CampaignType(req.CampaignType),
		Keywords:     req.Keywords,
		Locations:    req.Locations,
	}
	if req.DraftID != "" && h.drafts != nil {
		if stored, err := h.drafts.Get(r.Context(), userID(r), req.DraftID); err == nil {
			draft = *stored
			if req.Name != "" {
				draft.Name = req.Name
			}
			if req.BudgetUSD == 0 {
				req.BudgetUSD = stored.BudgetUSD
			}
			if req.DisplayCurrency == "" {
				req.DisplayCurrency = stored.DisplayCurrency
			}
		}
	}

	if req.BudgetUSD <= 0 {
		respondError(w, http.StatusBadRequest, "budget_usd must be positive")
		return
	}
	if !draft.CampaignType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown campaign_type")
		return
	}

	var account *domain.Account
	if acc, ok := h.reconciler.Get(req.CustomerID); ok {
		account = &acc
	}

	result := h.orchestrator.Publish(r.Context(), publish.Request{
		Selection: domain.BudgetSelection{
			AmountUSD:       req.BudgetUSD,
			DisplayCurrency: req.DisplayCurrency,
			DisplayAmount:   h.currency.Convert(req.BudgetUSD, req.DisplayCurrency),
		},
		Account:  account,
		Draft:    draft,
		Creative: req.Creative,
	})

	respondJSON(w, outcomeStatus(result.Outcome), result)
}

// PublishStatus exposes the state machine for progress polling.
func (h *Handlers) PublishStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"state":              h.orchestrator.CurrentState(),
		"progress":           h.orchestrator.Progress(),
		"banner_dismiss_sec": h.config.Publish.BannerDismissSec,
	})
}

// PublishReset returns the state machine to idle after the UI dismisses the
// result modal.
func (h *Handlers) PublishReset(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.Reset()
	respondJSON(w, http.StatusOK, map[string]string{"state": string(publish.StateIdle)})
}
