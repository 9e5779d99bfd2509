package drafts_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/service/drafts"
)

// memRepo is an in-memory draft repository for unit testing.
type memRepo struct {
	mu     sync.Mutex
	drafts map[string]*domain.CampaignDraft // keyed by id
}

func newMemRepo() *memRepo {
	return &memRepo{drafts: make(map[string]*domain.CampaignDraft)}
}

func (m *memRepo) Get(_ context.Context, userID, id string) (*domain.CampaignDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || d.UserID != userID {
		return nil, drafts.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]domain.CampaignDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CampaignDraft
	for _, d := range m.drafts {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memRepo) Create(_ context.Context, d *domain.CampaignDraft) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		return "", fmt.Errorf("id required")
	}
	cp := *d
	m.drafts[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Update(_ context.Context, userID, id string, u drafts.UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || d.UserID != userID {
		return drafts.ErrNotFound
	}
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.CampaignType != nil {
		d.CampaignType = *u.CampaignType
	}
	if u.BudgetUSD != nil {
		d.BudgetUSD = *u.BudgetUSD
	}
	if u.Keywords != nil {
		d.Keywords = *u.Keywords
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok || d.UserID != userID {
		return drafts.ErrNotFound
	}
	delete(m.drafts, id)
	return nil
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	svc := drafts.NewService(newMemRepo())

	d, err := svc.Create(context.Background(), "user-1", drafts.CreateInput{
		Name:       "Summer launch",
		WebsiteURL: "https://example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "user-1", d.UserID)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := drafts.NewService(newMemRepo())

	_, err := svc.Create(context.Background(), "user-1", drafts.CreateInput{
		CampaignType: "BANNER",
	})
	assert.ErrorIs(t, err, drafts.ErrInvalidType)
}

func TestCreateRejectsNegativeBudget(t *testing.T) {
	svc := drafts.NewService(newMemRepo())

	_, err := svc.Create(context.Background(), "user-1", drafts.CreateInput{BudgetUSD: -5})
	assert.Error(t, err)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := newMemRepo()
	svc := drafts.NewService(repo)

	d, err := svc.Create(context.Background(), "user-1", drafts.CreateInput{
		Name:      "Original",
		BudgetUSD: 15,
	})
	require.NoError(t, err)

	budget := 25.0
	require.NoError(t, svc.Update(context.Background(), "user-1", d.ID, drafts.UpdateFields{
		BudgetUSD: &budget,
	}))

	got, err := svc.Get(context.Background(), "user-1", d.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.BudgetUSD)
	assert.Equal(t, "Original", got.Name)
}

func TestUpdateRejectsUnknownType(t *testing.T) {
	repo := newMemRepo()
	svc := drafts.NewService(repo)
	d, _ := svc.Create(context.Background(), "user-1", drafts.CreateInput{})

	bad := domain.CampaignType("BANNER")
	err := svc.Update(context.Background(), "user-1", d.ID, drafts.UpdateFields{CampaignType: &bad})
	assert.ErrorIs(t, err, drafts.ErrInvalidType)
}

func TestGetScopedToOwner(t *testing.T) {
	repo := newMemRepo()
	svc := drafts.NewService(repo)
	d, _ := svc.Create(context.Background(), "user-1", drafts.CreateInput{Name: "Mine"})

	_, err := svc.Get(context.Background(), "user-2", d.ID)
	assert.ErrorIs(t, err, drafts.ErrNotFound)
}

func TestDeleteRemovesDraft(t *testing.T) {
	repo := newMemRepo()
	svc := drafts.NewService(repo)
	d, _ := svc.Create(context.Background(), "user-1", drafts.CreateInput{})

	require.NoError(t, svc.Delete(context.Background(), "user-1", d.ID))
	_, err := svc.Get(context.Background(), "user-1", d.ID)
	assert.ErrorIs(t, err, drafts.ErrNotFound)
}
