package ai

import (
	"errors"
	"fmt"
)

// ErrNoMessages is returned when a summary is requested for an empty
// message list. Backends check this before issuing any network call.
var ErrNoMessages = errors.New("no messages to summarize")

// ProviderError wraps a backend failure with enough context for the caller
// to decide whether retrying the whole pipeline pass makes sense. Attempts
// is how many calls were made before giving up; StatusCode is the last
// HTTP status observed (0 for transport-level failures).
type ProviderError struct {
	Provider   string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai: %s failed after %d attempt(s) with status %d: %v", e.Provider, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ai: %s failed after %d attempt(s): %v", e.Provider, e.Attempts, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
