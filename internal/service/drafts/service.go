package drafts

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ignite/adwizard/internal/domain"
)

// Service implements draft business logic on top of a Repository. All public
// methods are safe for concurrent use if the underlying repository is
// concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a drafts service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single draft.
func (s *Service) Get(ctx context.Context, userID, id string) (*domain.CampaignDraft, error) {
	return s.repo.Get(ctx, userID, id)
}

// ListByUser returns the user's drafts, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.CampaignDraft, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create validates and persists a new draft. The wizard creates a draft on
// step one, so most fields may still be empty.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*domain.CampaignDraft, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if input.CampaignType != "" && !domain.CampaignType(input.CampaignType).Valid() {
		return nil, ErrInvalidType
	}
	if input.BudgetUSD < 0 {
		return nil, fmt.Errorf("budget cannot be negative")
	}

	d := &domain.CampaignDraft{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            input.Name,
		WebsiteURL:      input.WebsiteURL,
		CampaignType:    domain.CampaignType(input.CampaignType),
		Keywords:        input.Keywords,
		Locations:       input.Locations,
		BudgetUSD:       input.BudgetUSD,
		DisplayCurrency: input.DisplayCurrency,
	}

	id, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	d.ID = id
	log.Printf("[drafts.Service] draft %s created for user %s", id, userID)
	return d, nil
}

// Update patches mutable draft fields.
func (s *Service) Update(ctx context.Context, userID, id string, u UpdateFields) error {
	if u.CampaignType != nil && !u.CampaignType.Valid() {
		return ErrInvalidType
	}
	if u.BudgetUSD != nil && *u.BudgetUSD < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return s.repo.Update(ctx, userID, id, u)
}

// Delete removes a draft.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// CreateInput holds the fields for creating a new draft.
type CreateInput struct {
	Name            string   `json:"name"`
	WebsiteURL      string   `json:"website_url"`
	CampaignType    string   `json:"campaign_type"`
	Keywords        []string `json:"keywords"`
	Locations       []string `json:"locations"`
	BudgetUSD       float64  `json:"budget_usd"`
	DisplayCurrency string   `json:"display_currency"`
}
