package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/adwizard/internal/domain"
)

type fakeMetrics struct {
	cpc   float64
	err   error
	calls int
}

func (f *fakeMetrics) KeywordCPC(_ context.Context, _ string, _ []string) (float64, error) {
	f.calls++
	return f.cpc, f.err
}

type fakeStore struct {
	entries map[string]float64
	puts    int
}

func newFakeStore() *fakeStore { return &fakeStore{entries: map[string]float64{}} }

func (f *fakeStore) Get(_ context.Context, site string) (float64, bool, error) {
	cpc, ok := f.entries[site]
	return cpc, ok, nil
}

func (f *fakeStore) Put(_ context.Context, site string, cpc float64) error {
	f.puts++
	f.entries[site] = cpc
	return nil
}

func TestSearchForecastWithLiveCPC(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		LiveCPC:      0.50,
	})

	// $15/day * 30 = $450 monthly at $0.50 CPC.
	assert.Equal(t, int64(900), est.Clicks)
	assert.Equal(t, int64(22500), est.Impressions)
	assert.Equal(t, int64(27), est.Conversions)
	assert.True(t, est.LiveData)
}

func TestVideoForecastResponsive(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignVideo,
		VideoSubtype: "responsive",
	})

	assert.Equal(t, domain.EstimateViews, est.Kind)
	assert.Equal(t, int64(7500), est.Views) // floor(450 / 0.06)
	assert.Equal(t, 0.06, est.CostPerView)
}

func TestVideoUnknownSubtypeUsesDefault(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignVideo,
		VideoSubtype: "hologram",
	})

	assert.Equal(t, videoProfiles[defaultVideoSubtype].costPerView, est.CostPerView)
}

func TestAppForecastByCategory(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignApp,
		AppName:      "Bubble Pop Saga",
		AppGenre:     "puzzle",
	})

	assert.Equal(t, domain.EstimateInstalls, est.Kind)
	assert.Equal(t, int64(300), est.Downloads) // floor(450 / 1.50 gaming CPI)
	assert.Equal(t, "Gaming", est.Industry)
}

func TestHeuristicCPCChain(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		Locations:    []string{"US"},
		Keywords:     []string{"zorblax widgets"}, // General, multiplier 1.0
	})

	// cpc = 2.69 (US) * 1.0 (General) * 1.0 (SEARCH)
	assert.False(t, est.LiveData)
	assert.InDelta(t, 2.69, est.CPC, 0.001)
	assert.Equal(t, int64(167), est.Clicks) // floor(450 / 2.69)
}

func TestIndustryMultiplierRaisesCPC(t *testing.T) {
	calc := NewCalculator(nil, nil)

	general := calc.Forecast(context.Background(), Input{
		BudgetUSD: 15, CampaignType: domain.CampaignSearch,
		Locations: []string{"US"}, Keywords: []string{"zorblax"},
	})
	legal := calc.Forecast(context.Background(), Input{
		BudgetUSD: 15, CampaignType: domain.CampaignSearch,
		Locations: []string{"US"}, Keywords: []string{"divorce lawyer"},
	})

	assert.Greater(t, legal.CPC, general.CPC)
	assert.Less(t, legal.Clicks, general.Clicks)
}

func TestBaseCPCAveragesLocations(t *testing.T) {
	calc := NewCalculator(nil, nil)

	// (2.69 + 0.26) / 2 = 1.475; unknown country contributes the default.
	assert.InDelta(t, 1.475, calc.baseCPC([]string{"US", "IN"}), 0.0001)
	assert.InDelta(t, defaultBaseCPC, calc.baseCPC(nil), 0.0001)
	assert.InDelta(t, defaultBaseCPC, calc.baseCPC([]string{"XX"}), 0.0001)
}

func TestFloorOfOneConversion(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    0.1, // 10 clicks at $0.30: 10 * 0.03 conversion rate < 1
		CampaignType: domain.CampaignSearch,
		LiveCPC:      0.30,
	})

	require.Greater(t, est.Clicks, int64(0))
	assert.Equal(t, int64(1), est.Conversions)
}

func TestZeroClicksMeansZeroConversions(t *testing.T) {
	calc := NewCalculator(nil, nil)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    0.001,
		CampaignType: domain.CampaignSearch,
		LiveCPC:      5.0,
	})

	assert.Equal(t, int64(0), est.Clicks)
	assert.Equal(t, int64(0), est.Conversions)
}

func TestImpressionsAtLeastClicks(t *testing.T) {
	calc := NewCalculator(nil, nil)

	for _, ct := range []domain.CampaignType{domain.CampaignSearch, domain.CampaignDisplay, domain.CampaignShopping} {
		est := calc.Forecast(context.Background(), Input{
			BudgetUSD: 25, CampaignType: ct, Locations: []string{"GB"},
		})
		assert.GreaterOrEqual(t, est.Impressions, est.Clicks, "campaign type %s", ct)
	}
}

func TestCPCFloorGuardsDivision(t *testing.T) {
	store := newFakeStore()
	store.entries["tiny.example"] = 0.001
	calc := NewCalculator(nil, store)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		WebsiteURL:   "tiny.example",
	})

	assert.Equal(t, minCPC, est.CPC)
	assert.Equal(t, int64(45000), est.Clicks) // floor(450 / 0.01)
}

func TestCacheHitSkipsMetricsCall(t *testing.T) {
	metrics := &fakeMetrics{cpc: 9.99}
	store := newFakeStore()
	store.entries["cached.example"] = 0.50
	calc := NewCalculator(metrics, store)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		WebsiteURL:   "cached.example",
		Keywords:     []string{"anything"},
	})

	assert.Equal(t, int64(900), est.Clicks)
	assert.Equal(t, 0, metrics.calls)
}

func TestCacheMissFetchesAndWritesThrough(t *testing.T) {
	metrics := &fakeMetrics{cpc: 0.50}
	store := newFakeStore()
	calc := NewCalculator(metrics, store)

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		WebsiteURL:   "fresh.example",
		Keywords:     []string{"anything"},
	})

	assert.True(t, est.LiveData)
	assert.Equal(t, 1, metrics.calls)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 0.50, store.entries["fresh.example"])
}

func TestMetricsFailureFallsBackSilently(t *testing.T) {
	metrics := &fakeMetrics{err: errors.New("upstream 503")}
	calc := NewCalculator(metrics, newFakeStore())

	est := calc.Forecast(context.Background(), Input{
		BudgetUSD:    15,
		CampaignType: domain.CampaignSearch,
		Locations:    []string{"US"},
		Keywords:     []string{"zorblax"},
	})

	assert.False(t, est.LiveData)
	assert.InDelta(t, 2.69, est.CPC, 0.001)
}
