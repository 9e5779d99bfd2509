// Package industry classifies a campaign's vertical from free-text evidence
// (keywords plus destination URL) using an ordered rule table. The first
// matching rule wins; rules never merge. Classification is pure: no network,
// no randomness, so the table is independently unit-testable.
package industry

import (
	"regexp"
	"strings"
)

// Classification is the inferred vertical and its CPC cost multiplier.
type Classification struct {
	Industry   string  `json:"industry"`
	Multiplier float64 `json:"multiplier"`
}

// Default is returned when nothing matches or the input is blank.
var Default = Classification{Industry: "General", Multiplier: 1.0}

type rule struct {
	pattern    *regexp.Regexp
	industry   string
	multiplier float64
}

// rules is evaluated in order, highest-value regulated intents first.
// Keep legal/medical/finance above everything: a "personal injury lawyer
// blog" is a legal campaign, not a blog.
var rules = []rule{
	{regexp.MustCompile(`lawyer|attorney|law firm|legal|litigation|paralegal`), "Legal", 4.2},
	{regexp.MustCompile(`insurance|insure|liability cover|premium quote`), "Insurance", 3.6},
	{regexp.MustCompile(`doctor|dentist|clinic|medical|surgery|pharma|treatment|therapy`), "Medical", 3.2},
	{regexp.MustCompile(`loan|mortgage|credit|banking|finance|invest|trading|accounting|tax`), "Finance", 3.0},
	{regexp.MustCompile(`real estate|realtor|property|apartment|housing`), "Real Estate", 2.4},
	{regexp.MustCompile(`plumb|hvac|roofing|electrician|locksmith|pest control|landscap`), "Home Services", 2.1},
	{regexp.MustCompile(`degree|course|tutoring|university|college|bootcamp|certification`), "Education", 1.9},
	{regexp.MustCompile(`car|auto|vehicle|dealership|mechanic|tires`), "Automotive", 1.7},
	{regexp.MustCompile(`software|saas|cloud|hosting|cybersecurity|developer`), "Technology", 1.5},
	{regexp.MustCompile(`gym|fitness|yoga|workout|personal trainer`), "Fitness", 1.4},
	{regexp.MustCompile(`hotel|flight|travel|vacation|cruise|resort|tour`), "Travel", 1.3},
	{regexp.MustCompile(`shop|store|buy|ecommerce|boutique|retail|marketplace`), "E-commerce", 1.2},
	{regexp.MustCompile(`restaurant|cafe|catering|bakery|food delivery|pizza`), "Food & Dining", 1.1},
	{regexp.MustCompile(`salon|spa|barber|makeup|skincare|beauty`), "Beauty", 1.1},
	{regexp.MustCompile(`blog|news|magazine|podcast|streaming|entertainment|celebrity`), "Media & Entertainment", 0.8},
}

// Classify infers the campaign vertical from its keywords and destination
// URL. Blank input yields Default.
func Classify(keywords []string, destinationURL string) Classification {
	haystack := strings.ToLower(strings.TrimSpace(strings.Join(keywords, " ") + " " + destinationURL))
	if haystack == "" {
		return Default
	}
	for _, r := range rules {
		if r.pattern.MatchString(haystack) {
			return Classification{Industry: r.industry, Multiplier: r.multiplier}
		}
	}
	return Default
}
