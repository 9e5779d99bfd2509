// Package publish drives the campaign publish state machine: precondition
// validation, cosmetic progress, the external publish call, result
// classification, and best-effort registration of the created campaign.
package publish

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ignite/adwizard/internal/adsplatform"
	"github.com/ignite/adwizard/internal/domain"
)

// State is the orchestrator's position in the publish lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateAccountCheck State = "account_check"
	StatePublishing   State = "publishing"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// Outcome classifies how a publish attempt ended.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeValidationError  Outcome = "validation_error"
	OutcomeAccountDisabled  Outcome = "account_disabled"
	OutcomeNetworkError     Outcome = "network_error"
	OutcomeApplicationError Outcome = "application_error"
)

// Result is the terminal answer of one publish attempt.
type Result struct {
	Outcome    Outcome `json:"outcome"`
	Message    string  `json:"message,omitempty"`
	CampaignID string  `json:"campaign_id,omitempty"`
}

// Platform issues the publish call. Implemented by adsplatform.Client.
type Platform interface {
	Publish(ctx context.Context, req adsplatform.PublishRequest) (*adsplatform.PublishResult, error)
}

// Registrar records a successfully created campaign with the tracking
// collaborator. Implementations must be best-effort: they log failures and
// never propagate them.
type Registrar interface {
	Register(ctx context.Context, reg Registration)
}

// Request carries everything one publish attempt needs.
type Request struct {
	Selection domain.BudgetSelection
	Account   *domain.Account
	Draft     domain.CampaignDraft
	Creative  domain.Creative
}

// Orchestrator runs at most one publish at a time per session. The
// in-flight flag is set synchronously under the mutex before any async
// work begins, so a rapid double activation is rejected even though the
// observable state updates lag behind.
type Orchestrator struct {
	mu       sync.Mutex
	inFlight bool
	state    State
	progress int

	platform  Platform
	registrar Registrar

	tickInterval time.Duration
	tickStep     int
}

// NewOrchestrator creates a publish orchestrator. registrar may be nil.
func NewOrchestrator(platform Platform, registrar Registrar, tickInterval time.Duration, tickStep int) *Orchestrator {
	if tickInterval <= 0 {
		tickInterval = 300 * time.Millisecond
	}
	if tickStep <= 0 {
		tickStep = 5
	}
	return &Orchestrator{
		platform:     platform,
		registrar:    registrar,
		state:        StateIdle,
		tickInterval: tickInterval,
		tickStep:     tickStep,
	}
}

// Publish validates preconditions in order, runs the publish call, and
// classifies the result. The single-flight guard is released on every
// path; the terminal state (and the UI modal it backs) persists until an
// explicit Reset.
func (o *Orchestrator) Publish(ctx context.Context, req Request) Result {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return Result{Outcome: OutcomeValidationError, Message: "a publish is already in progress"}
	}
	o.inFlight = true
	o.state = StateValidating
	o.progress = 0
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	if req.Account == nil {
		return o.fail(OutcomeValidationError, "no billing account selected")
	}

	o.setState(StateAccountCheck)
	if req.Account.Status != domain.AccountActive {
		// Aborts before any network call is made.
		return o.fail(OutcomeAccountDisabled,
			"account "+domain.FormatCustomerID(req.Account.CustomerID)+" is not enabled for billing")
	}

	o.setState(StatePublishing)
	stop := o.startTicker()
	res, err := o.platform.Publish(ctx, adsplatform.PublishRequest{
		CustomerID:     domain.NormalizeCustomerID(req.Account.CustomerID),
		Name:           req.Draft.Name,
		CampaignType:   string(req.Draft.CampaignType),
		DailyBudgetUSD: req.Selection.AmountUSD,
		Keywords:       req.Draft.Keywords,
		Locations:      req.Draft.Locations,
		Creative:       req.Creative,
	})
	close(stop)
	o.setProgress(90)

	if err != nil {
		// The request never completed: transport failure, retryable.
		return o.fail(OutcomeNetworkError, "could not reach the ads platform")
	}
	if !res.Success {
		outcome, msg := classifyPublishError(res.Reason())
		return o.fail(outcome, msg)
	}

	o.setProgress(95)
	if o.registrar != nil {
		// Best-effort: registration failure must never roll back a
		// published campaign.
		o.registrar.Register(ctx, Registration{
			CampaignID:   res.CampaignID,
			CustomerID:   domain.NormalizeCustomerID(req.Account.CustomerID),
			CampaignType: string(req.Draft.CampaignType),
			BudgetUSD:    req.Selection.AmountUSD,
			PublishedAt:  time.Now().UTC(),
		})
	}

	o.setProgress(100)
	o.setState(StateSucceeded)
	log.Printf("[publish.Orchestrator] campaign %s published to account %s",
		res.CampaignID, domain.FormatCustomerID(req.Account.CustomerID))
	return Result{Outcome: OutcomeSuccess, CampaignID: res.CampaignID}
}

// Reset returns the machine to Idle after the UI has navigated away.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.state = StateIdle
	o.progress = 0
	o.mu.Unlock()
}

// CurrentState returns the current lifecycle state.
func (o *Orchestrator) CurrentState() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Progress returns the 0-100 progress indicator.
func (o *Orchestrator) Progress() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// startTicker advances the cosmetic progress bar toward 80 until the
// returned channel is closed. Purely perceived responsiveness: real
// completion is signalled by the 90/95/100 snaps.
func (o *Orchestrator) startTicker() chan struct{} {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(o.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				o.mu.Lock()
				if o.progress < 80 {
					o.progress += o.tickStep
					if o.progress > 80 {
						o.progress = 80
					}
				}
				o.mu.Unlock()
			}
		}
	}()
	return stop
}

func (o *Orchestrator) fail(outcome Outcome, msg string) Result {
	o.setState(StateFailed)
	log.Printf("[publish.Orchestrator] publish failed (%s): %s", outcome, msg)
	return Result{Outcome: outcome, Message: msg}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) setProgress(p int) {
	o.mu.Lock()
	o.progress = p
	o.mu.Unlock()
}
