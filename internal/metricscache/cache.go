// Package metricscache persists the average CPC fetched for a website so
// later forecasts skip the live-metrics call. Entries are written once per
// website and never expire: a fetched CPC stays authoritative for the
// lifetime of the key.
package metricscache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cpc:history:"

// Entry is the stored record for one website.
type Entry struct {
	AvgCPC    float64   `json:"avg_cpc"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache is a redis-backed per-website CPC memo. A nil redis client degrades
// to a cache that always misses and drops writes, so callers never need a
// nil check.
type Cache struct {
	rdb *redis.Client
}

// New creates a metrics cache. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Get returns the remembered CPC for a website, with a hit indicator.
func (c *Cache) Get(ctx context.Context, websiteURL string) (float64, bool, error) {
	if c.rdb == nil {
		return 0, false, nil
	}
	raw, err := c.rdb.Get(ctx, key(websiteURL)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cpc cache read: %w", err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return 0, false, fmt.Errorf("cpc cache decode: %w", err)
	}
	return e.AvgCPC, true, nil
}

// Put stores a freshly fetched CPC. No TTL: entries never expire.
func (c *Cache) Put(ctx context.Context, websiteURL string, cpc float64) error {
	if c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(Entry{AvgCPC: cpc, FetchedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("cpc cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key(websiteURL), raw, 0).Err(); err != nil {
		return fmt.Errorf("cpc cache write: %w", err)
	}
	return nil
}

// key normalizes a website URL into a stable cache key: lowercase, scheme
// and trailing slash stripped. An empty URL shares the "default" slot.
func key(websiteURL string) string {
	s := strings.ToLower(strings.TrimSpace(websiteURL))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		s = "default"
	}
	return keyPrefix + s
}
