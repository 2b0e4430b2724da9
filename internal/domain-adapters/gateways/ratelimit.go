package gateways

import (
	"net/http"
	"strconv"
	"time"
)

// Rate-limit response headers
const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// Sources of a rate-limit wait duration, reported in logs
const (
	waitSourceRetryAfter = "retry-after"
	waitSourceReset      = "x-ratelimit-reset"
	waitSourceFallback   = "fallback"
)

// isRateLimited reports whether resp is a rate-limit rejection: 403 or
// 429 with the remaining-requests header reading exactly "0"
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get(headerRateLimitRemaining) == "0"
}

// rateLimitWait derives how long to wait before retrying. Retry-After
// seconds win; otherwise the reset epoch minus now, floored at zero;
// otherwise fallback.
func rateLimitWait(header http.Header, now time.Time, fallback time.Duration) (time.Duration, string) {
	if v := header.Get(headerRetryAfter); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second, waitSourceRetryAfter
		}
	}

	if v := header.Get(headerRateLimitReset); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			secs := reset - now.Unix()
			if secs < 0 {
				secs = 0
			}
			return time.Duration(secs) * time.Second, waitSourceReset
		}
	}

	return fallback, waitSourceFallback
}

// hintBackOff is a backoff.BackOff whose next interval is whatever the
// last rate-limit response asked for
type hintBackOff struct {
	next time.Duration
}

func (h *hintBackOff) NextBackOff() time.Duration { return h.next }

func (h *hintBackOff) Reset() { h.next = 0 }
