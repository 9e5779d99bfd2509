package currency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rates map[string]float64
	err   error
	calls int32
}

func (f *fakeSource) FetchRates(_ context.Context) (map[string]float64, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.rates, f.err
}

func TestConvertIsRoundedAndDeterministic(t *testing.T) {
	svc := NewService(nil, nil)

	// Fixed default table: INR at 83.2.
	assert.Equal(t, 1248, svc.Convert(15, "INR")) // round(15 * 83.2)
	assert.Equal(t, 1248, svc.Convert(15, "INR"))
	assert.Equal(t, 15, svc.Convert(15, "USD"))
}

func TestUnknownCurrencyFallsBackToUSD(t *testing.T) {
	svc := NewService(nil, nil)
	assert.Equal(t, 1.0, svc.Rate("XXX"))
	assert.Equal(t, 42, svc.Convert(42, "XXX"))
}

func TestRefreshAppliesLiveRates(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"EUR": 0.5}}
	svc := NewService(src, nil)

	svc.Refresh(context.Background())
	assert.Equal(t, 0.5, svc.Rate("EUR"))
	// Untouched codes keep defaults.
	assert.Equal(t, defaultRates["GBP"], svc.Rate("GBP"))
}

func TestRefreshAtMostOncePerSession(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"EUR": 0.5}}
	svc := NewService(src, nil)

	svc.Refresh(context.Background())
	svc.Refresh(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))

	svc.Invalidate()
	svc.Refresh(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestRefreshFailureKeepsDefaults(t *testing.T) {
	src := &fakeSource{err: errors.New("provider down")}
	svc := NewService(src, nil)

	svc.Refresh(context.Background())
	assert.Equal(t, defaultRates["EUR"], svc.Rate("EUR"))
}

func TestRefreshFailureRestoresSnapshot(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	// A previous session persisted a snapshot.
	good := NewService(&fakeSource{rates: map[string]float64{"EUR": 0.77}}, rdb)
	good.Refresh(context.Background())

	// This session's provider is down; snapshot wins over static defaults.
	bad := NewService(&fakeSource{err: errors.New("timeout")}, rdb)
	bad.Refresh(context.Background())
	assert.Equal(t, 0.77, bad.Rate("EUR"))
}

func TestIgnoresNonPositiveRates(t *testing.T) {
	src := &fakeSource{rates: map[string]float64{"EUR": -1, "GBP": 0}}
	svc := NewService(src, nil)

	svc.Refresh(context.Background())
	assert.Equal(t, defaultRates["EUR"], svc.Rate("EUR"))
	assert.Equal(t, defaultRates["GBP"], svc.Rate("GBP"))
}
