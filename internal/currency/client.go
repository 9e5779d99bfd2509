package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ignite/adwizard/internal/pkg/httpretry"
)

// RatesSource supplies live FX rates. Implemented by Client; faked in tests.
type RatesSource interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// Client fetches live FX rates from the configured provider.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient httpretry.HTTPDoer
}

// NewClient creates an FX-rate client. timeout bounds each fetch so a
// hanging provider can never block a forecast.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 2),
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client httpretry.HTTPDoer) {
	c.httpClient = client
}

type ratesResponse struct {
	Success bool               `json:"success"`
	Rates   map[string]float64 `json:"rates"`
	Error   string             `json:"error,omitempty"`
}

// FetchRates retrieves the current USD-based rate table.
func (c *Client) FetchRates(ctx context.Context) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/rates?base=USD", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rates API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !parsed.Success || len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates API rejected request: %s", parsed.Error)
	}

	return parsed.Rates, nil
}
