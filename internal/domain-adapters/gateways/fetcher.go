// Package gateways implements the HTTP adapters that read release feeds.
package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/ochairo/pyfinder/internal/clock"
	"github.com/ochairo/pyfinder/internal/domain/interfaces"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultFallbackWait = 2 * time.Minute
	defaultAPIVersion   = "2022-11-28"
	defaultUserAgent    = "pyfinder"
)

// FetcherConfig configures a RateLimitedFetcher
type FetcherConfig struct {
	Token      string
	APIVersion string
	UserAgent  string
	Timeout    time.Duration

	// MaxRateLimitRetries caps retries of one request after rate-limit
	// responses. Zero disables retrying.
	MaxRateLimitRetries int

	// MaxRateLimitWait caps the total time one request may spend waiting
	// on rate limits. Zero means no cap.
	MaxRateLimitWait time.Duration

	// FallbackWait is used when a rate-limit response carries no hint.
	FallbackWait time.Duration

	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64

	Clock      clock.Clock
	HTTPClient *http.Client
}

// RateLimitedFetcher issues GET requests and transparently waits out
// GitHub-style rate-limit responses
type RateLimitedFetcher struct {
	client       *http.Client
	clock        clock.Clock
	limiter      *rate.Limiter
	logger       interfaces.Logger
	headers      http.Header
	maxRetries   int
	maxWait      time.Duration
	fallbackWait time.Duration
}

// NewRateLimitedFetcher creates a fetcher. Zero-valued timeout, wait,
// header and clock fields take defaults.
func NewRateLimitedFetcher(logger interfaces.Logger, config FetcherConfig) *RateLimitedFetcher {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	// Copy so the timeout does not leak into a shared client.
	c := *client
	c.Timeout = timeout

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	fallback := config.FallbackWait
	if fallback <= 0 {
		fallback = defaultFallbackWait
	}
	retries := config.MaxRateLimitRetries
	if retries < 0 {
		retries = 0
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	headers := http.Header{}
	headers.Set("Accept", "application/vnd.github+json")
	headers.Set("X-GitHub-Api-Version", apiVersion)
	headers.Set("User-Agent", userAgent)
	if config.Token != "" {
		headers.Set("Authorization", "Bearer "+config.Token)
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &RateLimitedFetcher{
		client:       &c,
		clock:        clk,
		limiter:      limiter,
		logger:       logger,
		headers:      headers,
		maxRetries:   retries,
		maxWait:      config.MaxRateLimitWait,
		fallbackWait: fallback,
	}
}

// Fetch performs a GET of url.
//
// A rate-limit response is retried after the wait it advertises, up to
// the configured attempt and total-wait caps, after which a
// *gateways.RateLimitExceededError is returned. Any other status >= 400
// yields a *gateways.NetworkError. Waiting honours ctx and only blocks
// the calling goroutine.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, url string) (*gateways.Response, error) {
	hint := &hintBackOff{}
	policy := backoff.WithContext(backoff.WithMaxRetries(hint, uint64(f.maxRetries)), ctx)

	var waited time.Duration
	for attempt := 1; ; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("GET %s: %w", url, err)
			}
		}

		resp, err := f.do(ctx, url)
		if err != nil {
			return nil, err
		}

		if !isRateLimited(resp) {
			return f.readResponse(url, resp)
		}
		//nolint:errcheck,gosec // G104: Best effort close before retry
		resp.Body.Close()

		wait, source := rateLimitWait(resp.Header, f.clock.Now(), f.fallbackWait)
		hint.next = wait
		next := policy.NextBackOff()
		if next == backoff.Stop || (f.maxWait > 0 && waited+next > f.maxWait) {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("GET %s: %w", url, ctx.Err())
			}
			return nil, &gateways.RateLimitExceededError{URL: url, Attempts: attempt, Waited: waited}
		}

		f.logger.Warn("rate limited, backing off",
			interfaces.F("url", url),
			interfaces.F("status", resp.StatusCode),
			interfaces.F("source", source),
			interfaces.F("wait", next.String()),
			interfaces.F("attempt", attempt),
		)

		select {
		case <-f.clock.After(next):
		case <-ctx.Done():
			return nil, fmt.Errorf("GET %s: %w", url, ctx.Err())
		}
		waited += next
	}
}

func (f *RateLimitedFetcher) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range f.headers {
		req.Header[k] = v
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return resp, nil
}

func (f *RateLimitedFetcher) readResponse(url string, resp *http.Response) (*gateways.Response, error) {
	//nolint:errcheck // Defer close on response body
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &gateways.NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: failed to read body: %w", url, err)
	}

	f.logger.Debug("fetched",
		interfaces.F("url", url),
		interfaces.F("status", resp.StatusCode),
		interfaces.F("size", humanize.Bytes(uint64(len(body)))),
	)

	return &gateways.Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
