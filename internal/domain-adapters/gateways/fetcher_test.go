package gateways

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ochairo/pyfinder/internal/clock"
	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestFetcher(server *httptest.Server, clk clock.Clock, retries int) *RateLimitedFetcher {
	return NewRateLimitedFetcher(nil, FetcherConfig{
		Token:               "test-token",
		HTTPClient:          server.Client(),
		Clock:               clk,
		MaxRateLimitRetries: retries,
	})
}

// rateLimitedOnce returns a handler that rejects the first request with
// the given headers and answers "ok" afterwards.
func rateLimitedOnce(count *atomic.Int32, status int, headers map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if count.Add(1) == 1 {
			w.Header().Set("X-RateLimit-Remaining", "0")
			for k, v := range headers {
				w.Header().Set(k, v)
			}
			w.WriteHeader(status)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", "4999")
		_, _ = w.Write([]byte("ok"))
	}
}

func TestRateLimitedFetcher_SendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %s, want Bearer test-token", got)
		}
		if got := r.Header.Get("X-GitHub-Api-Version"); got != "2022-11-28" {
			t.Errorf("X-GitHub-Api-Version = %s, want 2022-11-28", got)
		}
		if got := r.Header.Get("User-Agent"); got != "pyfinder" {
			t.Errorf("User-Agent = %s, want pyfinder", got)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	resp, err := newTestFetcher(server, clock.Fake(testEpoch), 3).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.Text() != "[]" {
		t.Errorf("body = %q, want []", resp.Text())
	}
}

func TestRateLimitedFetcher_RetryAfter(t *testing.T) {
	var count atomic.Int32
	server := httptest.NewServer(rateLimitedOnce(&count, http.StatusTooManyRequests, map[string]string{"Retry-After": "5"}))
	defer server.Close()

	fake := clock.Fake(testEpoch)
	fetcher := newTestFetcher(server, fake, 3)

	done := make(chan error, 1)
	var resp *gateways.Response
	go func() {
		var err error
		resp, err = fetcher.Fetch(context.Background(), server.URL)
		done <- err
	}()

	fake.WaitForTimers(1)
	select {
	case err := <-done:
		t.Fatalf("Fetch returned before the wait elapsed: %v", err)
	default:
	}

	fake.Advance(4 * time.Second)
	if fake.PendingCount() != 1 {
		t.Fatalf("wait finished after 4s, want at least 5s")
	}
	fake.Advance(time.Second)

	if err := <-done; err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := count.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
	if resp.Text() != "ok" {
		t.Errorf("body = %q, want ok", resp.Text())
	}
	if elapsed := fake.Now().Sub(testEpoch); elapsed < 5*time.Second {
		t.Errorf("elapsed = %v, want >= 5s", elapsed)
	}
}

func TestRateLimitedFetcher_ResetHeader(t *testing.T) {
	var count atomic.Int32
	reset := strconv.FormatInt(testEpoch.Add(30*time.Second).Unix(), 10)
	server := httptest.NewServer(rateLimitedOnce(&count, http.StatusForbidden, map[string]string{"X-RateLimit-Reset": reset}))
	defer server.Close()

	fake := clock.Fake(testEpoch)
	fetcher := newTestFetcher(server, fake, 3)

	done := make(chan error, 1)
	go func() {
		_, err := fetcher.Fetch(context.Background(), server.URL)
		done <- err
	}()

	fake.WaitForTimers(1)
	fake.Advance(30 * time.Second)

	if err := <-done; err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := count.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

func TestRateLimitedFetcher_FallbackWait(t *testing.T) {
	var count atomic.Int32
	server := httptest.NewServer(rateLimitedOnce(&count, http.StatusTooManyRequests, nil))
	defer server.Close()

	fake := clock.Fake(testEpoch)
	fetcher := NewRateLimitedFetcher(nil, FetcherConfig{
		HTTPClient:          server.Client(),
		Clock:               fake,
		MaxRateLimitRetries: 1,
	})

	done := make(chan error, 1)
	go func() {
		_, err := fetcher.Fetch(context.Background(), server.URL)
		done <- err
	}()

	fake.WaitForTimers(1)
	fake.Advance(119 * time.Second)
	if fake.PendingCount() != 1 {
		t.Fatal("fallback wait finished before 120s")
	}
	fake.Advance(time.Second)

	if err := <-done; err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestRateLimitedFetcher_RetryBudgetExhausted(t *testing.T) {
	var count atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestFetcher(server, clock.Fake(testEpoch), 2).Fetch(context.Background(), server.URL)

	var rlErr *gateways.RateLimitExceededError
	if !errors.As(err, &rlErr) {
		t.Fatalf("Fetch() error = %v, want RateLimitExceededError", err)
	}
	if rlErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", rlErr.Attempts)
	}
	if got := count.Load(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestRateLimitedFetcher_TotalWaitBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Retry-After", "600")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewRateLimitedFetcher(nil, FetcherConfig{
		HTTPClient:          server.Client(),
		Clock:               clock.Fake(testEpoch),
		MaxRateLimitRetries: 10,
		MaxRateLimitWait:    time.Minute,
	})

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !gateways.IsRateLimitExceeded(err) {
		t.Fatalf("Fetch() error = %v, want RateLimitExceededError", err)
	}
}

func TestRateLimitedFetcher_HTTPErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		remaining    string
		wantNotFound bool
	}{
		{name: "not found", status: http.StatusNotFound, wantNotFound: true},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "forbidden with quota left", status: http.StatusForbidden, remaining: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				count.Add(1)
				if tt.remaining != "" {
					w.Header().Set("X-RateLimit-Remaining", tt.remaining)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestFetcher(server, clock.Fake(testEpoch), 3).Fetch(context.Background(), server.URL)

			var netErr *gateways.NetworkError
			if !errors.As(err, &netErr) {
				t.Fatalf("Fetch() error = %v, want NetworkError", err)
			}
			if netErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", netErr.StatusCode, tt.status)
			}
			if netErr.IsNotFound() != tt.wantNotFound {
				t.Errorf("IsNotFound() = %v, want %v", netErr.IsNotFound(), tt.wantNotFound)
			}
			if got := count.Load(); got != 1 {
				t.Errorf("requests = %d, want 1", got)
			}
		})
	}
}

func TestRateLimitedFetcher_CancelDuringWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fake := clock.Fake(testEpoch)
	fetcher := newTestFetcher(server, fake, 3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := fetcher.Fetch(ctx, server.URL)
		done <- err
	}()

	fake.WaitForTimers(1)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestRateLimitWait(t *testing.T) {
	now := testEpoch
	tests := []struct {
		name       string
		header     http.Header
		want       time.Duration
		wantSource string
	}{
		{
			name:       "retry-after wins",
			header:     http.Header{"Retry-After": {"7"}, "X-Ratelimit-Reset": {strconv.FormatInt(now.Unix()+100, 10)}},
			want:       7 * time.Second,
			wantSource: waitSourceRetryAfter,
		},
		{
			name:       "reset in the future",
			header:     http.Header{"X-Ratelimit-Reset": {strconv.FormatInt(now.Unix()+42, 10)}},
			want:       42 * time.Second,
			wantSource: waitSourceReset,
		},
		{
			name:       "reset in the past",
			header:     http.Header{"X-Ratelimit-Reset": {strconv.FormatInt(now.Unix()-42, 10)}},
			want:       0,
			wantSource: waitSourceReset,
		},
		{
			name:       "no hint",
			header:     http.Header{},
			want:       2 * time.Minute,
			wantSource: waitSourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := rateLimitWait(tt.header, now, 2*time.Minute)
			if got != tt.want {
				t.Errorf("wait = %v, want %v", got, tt.want)
			}
			if source != tt.wantSource {
				t.Errorf("source = %s, want %s", source, tt.wantSource)
			}
		})
	}
}
