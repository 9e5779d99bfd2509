// Package accounts keeps a session-local list of ads billing accounts
// consistent with the platform: a full re-fetch supplies the authoritative
// snapshot, and realtime push events are patched in optimistically ahead of
// a debounced verification re-fetch.
package accounts

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/pkg/debounce"
)

// Event types carried by the push subscription feed.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
)

// ChangeEvent is a partial account record pushed from the backing store.
type ChangeEvent struct {
	EventType string         `json:"eventType"`
	New       domain.Account `json:"new"`
	Old       domain.Account `json:"old"`
}

// Lister fetches the authoritative account snapshot for a user.
// Implemented by adsplatform.Client.
type Lister interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// Reconciler owns the account list for one session. All mutation funnels
// through List and ApplyEvent; the internal map is never exposed.
type Reconciler struct {
	mu       sync.Mutex
	accounts map[string]domain.Account // keyed by normalized customer id
	loaded   bool

	client     Lister
	userID     string
	maxVisible int
	refresh    *debounce.Timer
}

// NewReconciler creates a reconciler. maxVisible caps the picker list
// (cosmetic only); zero means unlimited. debounceWindow coalesces bursts of
// push events into a single verification re-fetch.
func NewReconciler(client Lister, userID string, maxVisible int, debounceWindow time.Duration) *Reconciler {
	if debounceWindow <= 0 {
		debounceWindow = 2 * time.Second
	}
	r := &Reconciler{
		accounts:   make(map[string]domain.Account),
		client:     client,
		userID:     userID,
		maxVisible: maxVisible,
	}
	r.refresh = debounce.New(debounceWindow, r.backgroundRefetch)
	return r
}

// List returns the visible accounts, fetching the authoritative snapshot
// on first use or when forceRefresh is set.
func (r *Reconciler) List(ctx context.Context, forceRefresh bool) ([]domain.Account, error) {
	r.mu.Lock()
	needFetch := forceRefresh || !r.loaded
	r.mu.Unlock()

	if needFetch {
		if err := r.refetch(ctx); err != nil {
			return nil, err
		}
	}
	return r.Visible(), nil
}

// Visible returns the accounts shown in the picker: negative states hidden,
// sorted by name, truncated to the plan limit. Truncation never touches the
// authoritative set used for publishing.
func (r *Reconciler) Visible() []domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if !a.Status.IsNegative() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if r.maxVisible > 0 && len(out) > r.maxVisible {
		out = out[:r.maxVisible]
	}
	return out
}

// Get looks up any tracked account by customer id (formatted or not).
// Negative-status accounts are still found here: publishing needs the
// authoritative record, not the cosmetic list.
func (r *Reconciler) Get(customerID string) (domain.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[domain.NormalizeCustomerID(customerID)]
	return a, ok
}

// ApplyEvent patches a realtime push event into the list immediately, then
// arms the debounced verification re-fetch. The patch always lands before
// the re-fetch is scheduled, so the UI never regresses while verification
// is pending.
func (r *Reconciler) ApplyEvent(evt ChangeEvent) {
	id := domain.NormalizeCustomerID(evt.New.CustomerID)
	if id == "" {
		return
	}

	r.mu.Lock()
	existing, seen := r.accounts[id]
	switch {
	case seen:
		// Partial record: only overwrite what the event carries.
		if evt.New.Name != "" {
			existing.Name = evt.New.Name
		}
		if evt.New.Status != "" {
			existing.Status = evt.New.Status
		}
		if evt.New.LinkStatus != "" {
			existing.LinkStatus = evt.New.LinkStatus
		}
		r.accounts[id] = existing
	case !evt.New.Status.IsNegative():
		a := evt.New
		a.CustomerID = id
		r.accounts[id] = a
	}
	r.mu.Unlock()

	r.refresh.Arm()
}

// Close stops the pending verification re-fetch, if any.
func (r *Reconciler) Close() {
	r.refresh.Stop()
}

// refetch replaces the snapshot with the platform's authoritative list.
func (r *Reconciler) refetch(ctx context.Context) error {
	listed, err := r.client.ListAccounts(ctx, r.userID)
	if err != nil {
		return err
	}

	next := make(map[string]domain.Account, len(listed))
	for _, a := range listed {
		a.CustomerID = domain.NormalizeCustomerID(a.CustomerID)
		next[a.CustomerID] = a
	}

	r.mu.Lock()
	r.accounts = next
	r.loaded = true
	r.mu.Unlock()

	log.Printf("[accounts.Reconciler] snapshot replaced (%d accounts)", len(next))
	return nil
}

func (r *Reconciler) backgroundRefetch() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.refetch(ctx); err != nil {
		log.Printf("[accounts.Reconciler] verification re-fetch failed: %v", err)
	}
}
