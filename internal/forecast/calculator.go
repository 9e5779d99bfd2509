// Package forecast turns a daily budget into monthly performance estimates.
// Live keyword metrics always win over the heuristic location/industry
// chain; when live data is unavailable the calculator degrades silently to
// heuristics: a lower-confidence number, never an error.
package forecast

import (
	"context"
	"log"
	"math"

	"github.com/ignite/adwizard/internal/domain"
	"github.com/ignite/adwizard/internal/industry"
)

// MetricsSource fetches a real average CPC for a website's keywords from
// the ads platform. Implemented by adsplatform.Client.
type MetricsSource interface {
	KeywordCPC(ctx context.Context, websiteURL string, keywords []string) (float64, error)
}

// CPCStore is the historical per-website CPC memo consulted before any
// live-metrics call. Implemented by metricscache.Cache.
type CPCStore interface {
	Get(ctx context.Context, websiteURL string) (float64, bool, error)
	Put(ctx context.Context, websiteURL string, cpc float64) error
}

// Input is everything a forecast depends on.
type Input struct {
	BudgetUSD    float64
	CampaignType domain.CampaignType
	Locations    []string
	Keywords     []string
	WebsiteURL   string
	VideoSubtype string
	AppName      string
	AppGenre     string

	// LiveCPC, when positive, overrides the entire heuristic chain and
	// skips cache/network resolution. Used when the caller already holds
	// fresh metrics.
	LiveCPC float64
}

// Calculator computes estimates. metrics and cache may be nil; both paths
// degrade to heuristics.
type Calculator struct {
	metrics MetricsSource
	cache   CPCStore
}

// NewCalculator creates a forecast calculator.
func NewCalculator(metrics MetricsSource, cache CPCStore) *Calculator {
	return &Calculator{metrics: metrics, cache: cache}
}

// Forecast produces a monthly estimate for the given input. It never fails:
// every degradation path lands on the heuristic tables.
func (c *Calculator) Forecast(ctx context.Context, in Input) domain.Estimate {
	monthly := in.BudgetUSD * 30

	switch in.CampaignType {
	case domain.CampaignVideo:
		return c.videoEstimate(monthly, in.VideoSubtype)
	case domain.CampaignApp:
		return c.appEstimate(monthly, in.AppName, in.AppGenre)
	default:
		return c.clicksEstimate(ctx, monthly, in)
	}
}

func (c *Calculator) clicksEstimate(ctx context.Context, monthly float64, in Input) domain.Estimate {
	class := industry.Classify(in.Keywords, in.WebsiteURL)

	cpc, live := c.resolveCPC(ctx, in)
	profile, ok := typeProfiles[string(in.CampaignType)]
	if !ok {
		profile = typeProfiles["SEARCH"]
	}
	if !live {
		cpc = c.baseCPC(in.Locations) * class.Multiplier * profile.cpcMultiplier
	}
	if cpc < minCPC {
		cpc = minCPC
	}

	clicks := int64(math.Floor(monthly / cpc))
	impressions := int64(math.Floor(float64(clicks) / profile.ctr))
	var conversions int64
	if clicks > 0 {
		// Floor of one: a visible zero reads as "pointless", so the
		// smallest positive forecast is a single conversion.
		conversions = int64(math.Floor(float64(clicks) * profile.conversionRate))
		if conversions < 1 {
			conversions = 1
		}
	}

	return domain.Estimate{
		Kind:        domain.EstimateClicks,
		Impressions: impressions,
		Clicks:      clicks,
		Conversions: conversions,
		CPC:         cpc,
		LiveData:    live,
		Industry:    class.Industry,
	}
}

func (c *Calculator) videoEstimate(monthly float64, subtype string) domain.Estimate {
	profile, ok := videoProfiles[subtype]
	if !ok {
		profile = videoProfiles[defaultVideoSubtype]
	}
	cpv := profile.costPerView
	if cpv < minCPC {
		cpv = minCPC
	}
	return domain.Estimate{
		Kind:           domain.EstimateViews,
		Views:          int64(math.Floor(monthly / cpv)),
		CostPerView:    cpv,
		EngagementRate: profile.engagementRate,
		CPC:            cpv,
		Industry:       industry.Default.Industry,
	}
}

func (c *Calculator) appEstimate(monthly float64, appName, appGenre string) domain.Estimate {
	category := industry.DetectAppCategory(appName, appGenre)
	profile := appProfiles[category]
	cpi := profile.costPerInstall
	if cpi < minCPC {
		cpi = minCPC
	}
	downloads := int64(math.Floor(monthly / cpi))
	return domain.Estimate{
		Kind:           domain.EstimateInstalls,
		Downloads:      downloads,
		CostPerInstall: cpi,
		InstallRate:    profile.installRate,
		CPC:            cpi,
		Industry:       string(category),
	}
}

// resolveCPC returns a live CPC and true, or (0, false) when only the
// heuristic chain is available. Order: caller override, historical cache,
// live metrics fetch (write-through on success). Failures are logged only.
func (c *Calculator) resolveCPC(ctx context.Context, in Input) (float64, bool) {
	if in.LiveCPC > 0 {
		return in.LiveCPC, true
	}

	if c.cache != nil {
		if cpc, ok, err := c.cache.Get(ctx, in.WebsiteURL); err == nil && ok && cpc > 0 {
			return cpc, true
		}
	}

	if c.metrics == nil || len(in.Keywords) == 0 {
		return 0, false
	}
	cpc, err := c.metrics.KeywordCPC(ctx, in.WebsiteURL, in.Keywords)
	if err != nil || cpc <= 0 {
		if err != nil {
			log.Printf("[forecast.Calculator] live metrics unavailable, using heuristics: %v", err)
		}
		return 0, false
	}
	if c.cache != nil {
		if err := c.cache.Put(ctx, in.WebsiteURL, cpc); err != nil {
			log.Printf("[forecast.Calculator] cpc cache write failed: %v", err)
		}
	}
	return cpc, true
}

// baseCPC averages the location table over the selected countries.
func (c *Calculator) baseCPC(locations []string) float64 {
	if len(locations) == 0 {
		return defaultBaseCPC
	}
	total := 0.0
	for _, loc := range locations {
		if cpc, ok := locationCPC[loc]; ok {
			total += cpc
		} else {
			total += defaultBaseCPC
		}
	}
	return total / float64(len(locations))
}
