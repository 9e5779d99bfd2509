package industry

import (
	"regexp"
	"strings"
)

// AppCategory is the detected app vertical used to pick a cost-per-install
// profile for APP campaign forecasts.
type AppCategory string

const (
	AppGaming    AppCategory = "Gaming"
	AppFinance   AppCategory = "Finance"
	AppHealth    AppCategory = "Health & Fitness"
	AppEducation AppCategory = "Education"
	AppSocial    AppCategory = "Social"
	AppShopping  AppCategory = "Shopping"
	AppUtility   AppCategory = "Utility"
)

type appRule struct {
	pattern  *regexp.Regexp
	category AppCategory
}

// Same first-match strategy as the industry table. Finance before gaming:
// a "crypto trading game" bills like a finance app.
var appRules = []appRule{
	{regexp.MustCompile(`bank|finance|invest|trading|crypto|wallet|budget|payment`), AppFinance},
	{regexp.MustCompile(`game|gaming|puzzle|arcade|rpg|casino|slots`), AppGaming},
	{regexp.MustCompile(`fitness|health|workout|meditat|sleep|diet|wellness`), AppHealth},
	{regexp.MustCompile(`learn|education|language|tutor|course|flashcard`), AppEducation},
	{regexp.MustCompile(`chat|social|dating|messag|community|friends`), AppSocial},
	{regexp.MustCompile(`shop|store|deal|coupon|marketplace|fashion`), AppShopping},
}

// DetectAppCategory infers an app's vertical from its name and genre text.
// Blank or unmatched input yields AppUtility.
func DetectAppCategory(appName, genre string) AppCategory {
	haystack := strings.ToLower(strings.TrimSpace(appName + " " + genre))
	if haystack == "" {
		return AppUtility
	}
	for _, r := range appRules {
		if r.pattern.MatchString(haystack) {
			return r.category
		}
	}
	return AppUtility
}
