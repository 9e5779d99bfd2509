package publish

import "strings"

// accountDisabledPhrases are the upstream message fragments that mean the
// billing account exists but is not usable yet. The upstream taxonomy is
// message-based, not coded, so substring matching is the compatibility
// contract; keep every rule in this one function.
var accountDisabledPhrases = []string{
	"not yet enabled",
	"not enabled",
	"billing is not active",
	"account is not active",
	"awaiting billing",
	"billing setup incomplete",
	"customer is not active",
}

// classifyPublishError maps an application-level rejection message to an
// outcome. AccountDisabled takes priority over the generic failure; an
// empty message gets a generic fallback surfaced to the user.
func classifyPublishError(msg string) (Outcome, string) {
	lower := strings.ToLower(msg)
	for _, phrase := range accountDisabledPhrases {
		if strings.Contains(lower, phrase) {
			return OutcomeAccountDisabled, msg
		}
	}
	if msg == "" {
		return OutcomeApplicationError, "the ads platform rejected the campaign"
	}
	return OutcomeApplicationError, msg
}
