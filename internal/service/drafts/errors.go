package drafts

import "errors"

// Sentinel errors for the drafts service layer.
var (
	ErrNotFound    = errors.New("draft not found")
	ErrInvalidType = errors.New("unknown campaign type")
)
