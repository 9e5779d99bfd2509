package currency

import "sort"

// defaultRates are the hard-coded fallback FX rates (units per USD) used
// when the live provider is unreachable and no snapshot exists. Display
// estimates, not settlement, so precision matters less than availability.
var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"CAD": 1.36,
	"AUD": 1.52,
	"INR": 83.2,
	"JPY": 149.5,
	"BRL": 5.05,
	"MXN": 17.1,
	"SGD": 1.34,
	"AED": 3.67,
	"ZAR": 18.6,
}

// Supported reports whether the currency code has a rate table entry.
func Supported(code string) bool {
	_, ok := defaultRates[code]
	return ok
}

// Codes returns the supported currency codes, sorted.
func Codes() []string {
	out := make([]string, 0, len(defaultRates))
	for code := range defaultRates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
