package currency

import (
	"context"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "fx:rates"

// Service converts USD budgets to display currencies. Conversion never
// fails: on any fetch problem it keeps serving the previously cached or
// hard-coded default rates, and callers are never shown an error for a
// degraded rate. Safe for concurrent use.
type Service struct {
	mu        sync.RWMutex
	rates     map[string]float64
	refreshed bool

	source RatesSource
	rdb    *redis.Client // optional last-good snapshot across restarts
}

// NewService creates a currency service seeded with the default rate table.
// source and rdb may be nil; both degrade silently.
func NewService(source RatesSource, rdb *redis.Client) *Service {
	rates := make(map[string]float64, len(defaultRates))
	for code, rate := range defaultRates {
		rates[code] = rate
	}
	return &Service{rates: rates, source: source, rdb: rdb}
}

// Rate returns the units-per-USD rate for the given currency code.
// Unknown codes fall back to 1.0 (display in USD).
func (s *Service) Rate(code string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rate, ok := s.rates[code]; ok && rate > 0 {
		return rate
	}
	return 1.0
}

// Convert returns amountUSD in the target currency, rounded to the nearest
// whole unit. No sub-unit display.
func (s *Service) Convert(amountUSD float64, code string) int {
	return int(math.Round(amountUSD * s.Rate(code)))
}

// Refresh fetches live rates once per session. Subsequent calls are no-ops
// until Invalidate. Failures are logged and swallowed: stale or default
// rates are preferable to blocking or erroring the wizard.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.refreshed || s.source == nil {
		s.mu.Unlock()
		return
	}
	s.refreshed = true
	s.mu.Unlock()

	live, err := s.source.FetchRates(ctx)
	if err != nil {
		log.Printf("[currency.Service] live rates unavailable, keeping fallback: %v", err)
		s.loadSnapshot(ctx)
		return
	}

	s.mu.Lock()
	for code, rate := range live {
		if rate > 0 {
			s.rates[code] = rate
		}
	}
	s.mu.Unlock()
	log.Printf("[currency.Service] refreshed %d live rates", len(live))

	s.saveSnapshot(ctx)
}

// Invalidate allows the next Refresh to fetch again.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.refreshed = false
	s.mu.Unlock()
}

// loadSnapshot pulls the last-good rates hash from redis. Best effort.
func (s *Service) loadSnapshot(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	snap, err := s.rdb.HGetAll(ctx, snapshotKey).Result()
	if err != nil || len(snap) == 0 {
		return
	}
	s.mu.Lock()
	n := 0
	for code, raw := range snap {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate > 0 {
			s.rates[code] = rate
			n++
		}
	}
	s.mu.Unlock()
	log.Printf("[currency.Service] restored %d rates from snapshot", n)
}

// saveSnapshot persists the current rates hash to redis. Best effort.
func (s *Service) saveSnapshot(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	s.mu.RLock()
	fields := make(map[string]interface{}, len(s.rates))
	for code, rate := range s.rates {
		fields[code] = rate
	}
	s.mu.RUnlock()
	if err := s.rdb.HSet(ctx, snapshotKey, fields).Err(); err != nil {
		log.Printf("[currency.Service] snapshot write failed: %v", err)
	}
}
