package gateways

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NetworkError reports an HTTP failure status that is not rate limiting
type NetworkError struct {
	URL        string
	StatusCode int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether the server answered 404
func (e *NetworkError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RateLimitExceededError is returned when the rate-limit retry budget
// for a single request is exhausted
type RateLimitExceededError struct {
	URL      string
	Attempts int
	Waited   time.Duration
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("GET %s: rate limit still exhausted after %d attempts (waited %s)", e.URL, e.Attempts, e.Waited)
}

// IsNotFound reports whether err wraps a 404 NetworkError
func IsNotFound(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.IsNotFound()
}

// IsRateLimitExceeded reports whether err wraps a RateLimitExceededError
func IsRateLimitExceeded(err error) bool {
	var rlErr *RateLimitExceededError
	return errors.As(err, &rlErr)
}
