package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/service/drafts"
)

// DraftRepo implements drafts.Repository against PostgreSQL. Keyword and
// location lists are stored as text[] columns via pq.Array.
type DraftRepo struct{ db *sql.DB }

// NewDraftRepo creates a Postgres-backed draft repository.
func NewDraftRepo(db *sql.DB) *DraftRepo { return &DraftRepo{db: db} }

func (r *DraftRepo) Get(ctx context.Context, userID, id string) (*domain.CampaignDraft, error) {
	d := &domain.CampaignDraft{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, website_url, campaign_type, keywords, locations,
		       budget_usd, display_currency,
		       COALESCE(video_subtype,''), COALESCE(app_name,''), COALESCE(app_genre,''),
		       created_at, updated_at
		FROM wizard_drafts
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.WebsiteURL, &d.CampaignType,
		pq.Array(&d.Keywords), pq.Array(&d.Locations),
		&d.BudgetUSD, &d.DisplayCurrency,
		&d.VideoSubtype, &d.AppName, &d.AppGenre,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, drafts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return d, nil
}

func (r *DraftRepo) ListByUser(ctx context.Context, userID string) ([]domain.CampaignDraft, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, website_url, campaign_type, keywords, locations,
		       budget_usd, display_currency, created_at, updated_at
		FROM wizard_drafts
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []domain.CampaignDraft
	for rows.Next() {
		var d domain.CampaignDraft
		if err := rows.Scan(
			&d.ID, &d.Name, &d.WebsiteURL, &d.CampaignType,
			pq.Array(&d.Keywords), pq.Array(&d.Locations),
			&d.BudgetUSD, &d.DisplayCurrency, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		d.UserID = userID
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DraftRepo) Create(ctx context.Context, d *domain.CampaignDraft) (string, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wizard_drafts
			(id, user_id, name, website_url, campaign_type, keywords, locations,
			 budget_usd, display_currency, video_subtype, app_name, app_genre,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`, d.ID, d.UserID, d.Name, d.WebsiteURL, d.CampaignType,
		pq.Array(d.Keywords), pq.Array(d.Locations),
		d.BudgetUSD, d.DisplayCurrency, d.VideoSubtype, d.AppName, d.AppGenre)
	if err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	return d.ID, nil
}

func (r *DraftRepo) Update(ctx context.Context, userID, id string, u drafts.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.WebsiteURL != nil {
		add("website_url", *u.WebsiteURL)
	}
	if u.CampaignType != nil {
		add("campaign_type", *u.CampaignType)
	}
	if u.Keywords != nil {
		add("keywords", pq.Array(*u.Keywords))
	}
	if u.Locations != nil {
		add("locations", pq.Array(*u.Locations))
	}
	if u.BudgetUSD != nil {
		add("budget_usd", *u.BudgetUSD)
	}
	if u.DisplayCurrency != nil {
		add("display_currency", *u.DisplayCurrency)
	}
	if u.VideoSubtype != nil {
		add("video_subtype", *u.VideoSubtype)
	}
	if u.AppName != nil {
		add("app_name", *u.AppName)
	}
	if u.AppGenre != nil {
		add("app_genre", *u.AppGenre)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	q := fmt.Sprintf("UPDATE wizard_drafts SET %s WHERE id = $%d AND user_id = $%d",
		joinComma(sets), idx, idx+1)
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return drafts.ErrNotFound
	}
	return nil
}

func (r *DraftRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wizard_drafts WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return drafts.ErrNotFound
	}
	return nil
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
