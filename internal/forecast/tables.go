package forecast

import "github.com/ignite/adwizard/internal/industry"

// locationCPC maps a country code to its base CPC in USD. Values are market
// averages, adjusted further by industry and campaign type.
var locationCPC = map[string]float64{
	"US": 2.69,
	"CA": 1.97,
	"GB": 1.22,
	"AU": 1.87,
	"DE": 1.08,
	"FR": 0.93,
	"NL": 0.85,
	"JP": 0.94,
	"SG": 1.15,
	"AE": 1.05,
	"IN": 0.26,
	"BR": 0.44,
	"MX": 0.52,
	"ZA": 0.48,
}

// defaultBaseCPC applies when no location is selected or the country is
// not in the table.
const defaultBaseCPC = 1.5

// minCPC floors every division so a zero or negative CPC can never produce
// infinite clicks.
const minCPC = 0.01

// typeProfile holds the click-economics of a clicks-based campaign type.
type typeProfile struct {
	cpcMultiplier  float64
	ctr            float64
	conversionRate float64
}

var typeProfiles = map[string]typeProfile{
	"SEARCH":   {cpcMultiplier: 1.0, ctr: 0.04, conversionRate: 0.03},
	"DISPLAY":  {cpcMultiplier: 0.35, ctr: 0.008, conversionRate: 0.01},
	"SHOPPING": {cpcMultiplier: 0.75, ctr: 0.018, conversionRate: 0.02},
}

// videoProfile holds per-subtype video economics. Rates are fixed midpoints
// of the observed range for each format.
type videoProfile struct {
	costPerView    float64
	engagementRate float64
}

var videoProfiles = map[string]videoProfile{
	"responsive": {costPerView: 0.06, engagementRate: 0.32},
	"in-stream":  {costPerView: 0.05, engagementRate: 0.31},
	"bumper":     {costPerView: 0.04, engagementRate: 0.22},
	"shorts":     {costPerView: 0.045, engagementRate: 0.28},
	"outstream":  {costPerView: 0.02, engagementRate: 0.18},
}

const defaultVideoSubtype = "responsive"

// appProfile holds per-category install economics.
type appProfile struct {
	costPerInstall float64
	installRate    float64
}

var appProfiles = map[industry.AppCategory]appProfile{
	industry.AppGaming:    {costPerInstall: 1.5, installRate: 0.25},
	industry.AppFinance:   {costPerInstall: 4.2, installRate: 0.08},
	industry.AppHealth:    {costPerInstall: 2.6, installRate: 0.12},
	industry.AppEducation: {costPerInstall: 2.0, installRate: 0.15},
	industry.AppSocial:    {costPerInstall: 1.8, installRate: 0.20},
	industry.AppShopping:  {costPerInstall: 2.3, installRate: 0.14},
	industry.AppUtility:   {costPerInstall: 1.2, installRate: 0.18},
}
