package graph

import (
	"fmt"
	"net/http"
)

// RemoteAPIError is returned for any non-recoverable failure against the
// remote platform API. StatusCode is the last HTTP status observed (0 for
// transport-level failures) and Attempts is how many times the full
// paginated fetch was tried before giving up.
type RemoteAPIError struct {
	Op         string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graph: %s failed after %d attempt(s) with status %d: %v", e.Op, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graph: %s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// retryableStatus reports whether a status code is worth another attempt:
// rate limiting and transient server failures only.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}
