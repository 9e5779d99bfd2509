package drafts

import (
	"context"

	"github.com/ignite/adwizard/internal/domain"
)

// Repository defines the data access contract for wizard drafts.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single draft. Returns ErrNotFound if it doesn't exist
	// or belongs to another user.
	Get(ctx context.Context, userID, id string) (*domain.CampaignDraft, error)

	// ListByUser returns all drafts for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.CampaignDraft, error)

	// Create inserts a new draft and returns its ID.
	Create(ctx context.Context, d *domain.CampaignDraft) (string, error)

	// Update applies the non-nil fields. Returns ErrNotFound when the draft
	// doesn't exist.
	Update(ctx context.Context, userID, id string, u UpdateFields) error

	// Delete removes a draft.
	Delete(ctx context.Context, userID, id string) error
}

// UpdateFields holds the mutable fields for a draft update.
// Nil fields are not applied, so each wizard step patches only what it owns.
type UpdateFields struct {
	Name            *string
	WebsiteURL      *string
	CampaignType    *domain.CampaignType
	Keywords        *[]string
	Locations       *[]string
	BudgetUSD       *float64
	DisplayCurrency *string
	VideoSubtype    *string
	AppName         *string
	AppGenre        *string
}
