// Package adsplatform is the JSON HTTP client for the external ads
// platform: account listing, keyword metrics, and campaign publishing.
package adsplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/pkg/httpretry"
)

// Config holds the client's connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is the ads platform API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpretry.HTTPDoer
}

// NewClient creates a new ads platform client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 2),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client httpretry.HTTPDoer) {
	c.httpClient = client
}

// doRequest performs an authenticated request. A non-nil error means the
// request never completed (transport level); HTTP-level rejections come
// back as the response body with its status code.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

type accountsResponse struct {
	Success  bool             `json:"success"`
	Accounts []domain.Account `json:"accounts"`
	Error    string           `json:"error,omitempty"`
}

// ListAccounts fetches the billing accounts linked to the given user.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, "/v1/users/"+userID+"/ads-accounts", nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("accounts API error (status %d): %s", status, string(body))
	}

	var parsed accountsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("accounts API rejected request: %s", parsed.Error)
	}
	return parsed.Accounts, nil
}

type metricsRequest struct {
	WebsiteURL string   `json:"website_url"`
	Keywords   []string `json:"keywords"`
}

type metricsResponse struct {
	Success bool    `json:"success"`
	AvgCPC  float64 `json:"avg_cpc"`
	Error   string  `json:"error,omitempty"`
}

// KeywordCPC fetches the real average CPC observed for a website's
// keywords. Callers treat any error as "use heuristics".
func (c *Client) KeywordCPC(ctx context.Context, websiteURL string, keywords []string) (float64, error) {
	status, body, err := c.doRequest(ctx, http.MethodPost, "/v1/keywords/metrics", metricsRequest{
		WebsiteURL: websiteURL,
		Keywords:   keywords,
	})
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return 0, fmt.Errorf("metrics API error (status %d): %s", status, string(body))
	}

	var parsed metricsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	if !parsed.Success || parsed.AvgCPC <= 0 {
		return 0, fmt.Errorf("metrics API rejected request: %s", parsed.Error)
	}
	return parsed.AvgCPC, nil
}

// PublishRequest is the payload for creating a live campaign.
type PublishRequest struct {
	CustomerID     string          `json:"customer_id"`
	Name           string          `json:"name"`
	CampaignType   string          `json:"campaign_type"`
	DailyBudgetUSD float64         `json:"daily_budget_usd"`
	Keywords       []string        `json:"keywords,omitempty"`
	Locations      []string        `json:"locations,omitempty"`
	Creative       domain.Creative `json:"creative"`
}

// PublishResult is the platform's answer to a publish attempt. Success
// false with a message is an application-level rejection, distinct from a
// transport error.
type PublishResult struct {
	Success    bool   `json:"success"`
	CampaignID string `json:"campaign_id,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Reason returns whichever of error/message the platform populated.
// The upstream taxonomy is message-based, not coded.
func (r PublishResult) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// Publish creates a live campaign. A non-nil error means the request never
// completed; an application-level rejection is returned as a PublishResult
// with Success=false. The publish call carries no client-side timeout;
// the caller's single-flight guard prevents concurrent retries.
func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	status, body, err := c.doRequest(ctx, http.MethodPost, "/v1/campaigns/publish", req)
	if err != nil {
		return nil, err
	}

	var parsed PublishResult
	if err := json.Unmarshal(body, &parsed); err != nil {
		if status < 200 || status >= 300 {
			return &PublishResult{Success: false, Error: fmt.Sprintf("publish API error (status %d)", status)}, nil
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if status >= 200 && status < 300 && parsed.Success {
		return &parsed, nil
	}
	parsed.Success = false
	return &parsed, nil
}
