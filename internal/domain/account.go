package domain

import "strings"

// AccountStatus enumerates the billing states an ads account can be in.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountPending   AccountStatus = "PENDING"
	AccountNotLinked AccountStatus = "NOT_LINKED"
	AccountRejected  AccountStatus = "REJECTED"
	AccountCancelled AccountStatus = "CANCELLED"
	AccountRemoved   AccountStatus = "REMOVED"
)

// IsNegative reports whether the status is a terminal negative state that
// should never surface in the account picker.
func (s AccountStatus) IsNegative() bool {
	switch s {
	case AccountNotLinked, AccountRejected, AccountCancelled, AccountRemoved:
		return true
	}
	return false
}

// Account is a billing account on the ads platform. CustomerID is stored
// unformatted (digits only); formatting with dashes is display-only.
type Account struct {
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Status     AccountStatus `json:"status"`
	LinkStatus string        `json:"link_status,omitempty"`
}

// NormalizeCustomerID strips separators so that formatted ("123-456-7890")
// and unformatted ("1234567890") ids always compare equal. All id
// comparisons in the engine go through this.
func NormalizeCustomerID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCustomerID renders a 10-digit customer id as xxx-xxx-xxxx.
// Anything that isn't 10 digits after normalization is returned as-is.
func FormatCustomerID(id string) string {
	n := NormalizeCustomerID(id)
	if len(n) != 10 {
		return id
	}
	return n[:3] + "-" + n[3:6] + "-" + n[6:]
}
