package domain

// EstimateKind indicates which family of metrics an estimate carries.
type EstimateKind string

const (
	EstimateClicks   EstimateKind = "clicks"   // SEARCH / DISPLAY / SHOPPING
	EstimateViews    EstimateKind = "views"    // VIDEO
	EstimateInstalls EstimateKind = "installs" // APP
)

// Estimate is a monthly performance forecast for a campaign at a given
// daily budget. Which fields are populated depends on Kind.
type Estimate struct {
	Kind EstimateKind `json:"kind"`

	// SEARCH / DISPLAY / SHOPPING
	Impressions int64 `json:"impressions,omitempty"`
	Clicks      int64 `json:"clicks,omitempty"`
	Conversions int64 `json:"conversions,omitempty"`

	// VIDEO
	Views          int64   `json:"views,omitempty"`
	CostPerView    float64 `json:"cost_per_view,omitempty"`
	EngagementRate float64 `json:"engagement_rate,omitempty"`

	// APP
	Downloads      int64   `json:"downloads,omitempty"`
	CostPerInstall float64 `json:"cost_per_install,omitempty"`
	InstallRate    float64 `json:"install_rate,omitempty"`

	// Diagnostics surfaced to the UI as confidence hints, never as errors.
	CPC      float64 `json:"cpc"`
	LiveData bool    `json:"live_data"`
	Industry string  `json:"industry"`
}
