package adsplatform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/adwizard/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Timeout: 5 * time.Second})
	c.SetHTTPClient(srv.Client())
	return c
}

func TestListAccounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/users/user-1/ads-accounts", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"accounts": []domain.Account{
				{CustomerID: "1234567890", Name: "Main", Status: domain.AccountActive},
				{CustomerID: "9876543210", Name: "Old", Status: domain.AccountCancelled},
			},
		})
	})

	accounts, err := client.ListAccounts(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, domain.AccountActive, accounts[0].Status)
}

func TestListAccountsRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "unknown user"})
	})

	_, err := client.ListAccounts(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown user")
}

func TestKeywordCPC(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req metricsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com", req.WebsiteURL)

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "avg_cpc": 0.57})
	})

	cpc, err := client.KeywordCPC(context.Background(), "https://example.com", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0.57, cpc)
}

func TestPublishSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req PublishRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1234567890", req.CustomerID)

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "campaign_id": "cmp-42"})
	})

	res, err := client.Publish(context.Background(), PublishRequest{CustomerID: "1234567890"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "cmp-42", res.CampaignID)
}

func TestPublishApplicationRejection(t *testing.T) {
	// Completed request, success=false: an application error, not a
	// transport error.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "billing account not yet enabled",
		})
	})

	res, err := client.Publish(context.Background(), PublishRequest{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "billing account not yet enabled", res.Reason())
}

func TestPublishTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	client.SetHTTPClient(srv.Client())
	srv.Close() // connection refused from here on

	_, err := client.Publish(context.Background(), PublishRequest{})
	assert.Error(t, err)
}
