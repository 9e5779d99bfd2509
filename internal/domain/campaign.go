package domain

import (
	"time"
)

// CampaignType enumerates the supported ads campaign types.
type CampaignType string

const (
	CampaignSearch   CampaignType = "SEARCH"
	CampaignDisplay  CampaignType = "DISPLAY"
	CampaignVideo    CampaignType = "VIDEO"
	CampaignShopping CampaignType = "SHOPPING"
	CampaignApp      CampaignType = "APP"
)

// Valid reports whether t is a known campaign type.
func (t CampaignType) Valid() bool {
	switch t {
	case CampaignSearch, CampaignDisplay, CampaignVideo, CampaignShopping, CampaignApp:
		return true
	}
	return false
}

// BudgetSelection is the user's chosen daily budget. AmountUSD is the single
// source of truth; DisplayAmount is always derived as round(AmountUSD * rate)
// and never fed back into AmountUSD.
type BudgetSelection struct {
	AmountUSD       float64 `json:"amount_usd"`
	DisplayCurrency string  `json:"display_currency"`
	DisplayAmount   int     `json:"display_amount"`
}

// Creative is the AI-generated ad creative attached to a publish request.
// Generation itself is an external collaborator; we only carry the result.
type Creative struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
	FinalURL     string   `json:"final_url"`
}

// CampaignDraft is the wizard state persisted between steps: everything the
// user has picked so far, before the campaign is published.
type CampaignDraft struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"user_id" db:"user_id"`
	Name            string       `json:"name" db:"name"`
	WebsiteURL      string       `json:"website_url" db:"website_url"`
	CampaignType    CampaignType `json:"campaign_type" db:"campaign_type"`
	Keywords        []string     `json:"keywords" db:"keywords"`
	Locations       []string     `json:"locations" db:"locations"`
	BudgetUSD       float64      `json:"budget_usd" db:"budget_usd"`
	DisplayCurrency string       `json:"display_currency" db:"display_currency"`
	VideoSubtype    string       `json:"video_subtype,omitempty" db:"video_subtype"`
	AppName         string       `json:"app_name,omitempty" db:"app_name"`
	AppGenre        string       `json:"app_genre,omitempty" db:"app_genre"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}
