package match

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Handlers branch on
// these with errors.Is; anything wrapped in ErrStoreUnavailable is a
// retryable store failure surfaced verbatim, never swallowed.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("request already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IneligibleError reports a profile below the tier required for matching.
// It carries the required tier and current completion percentage so the
// caller can render progress instead of an empty result. It is an expected
// outcome, not a hard failure.
type IneligibleError struct {
	RequiredTier int
	Percentage   int
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("profile incomplete: tier %d required to match (currently %d%%)", e.RequiredTier, e.Percentage)
}
