package gateways

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct 404", &NetworkError{URL: "u", StatusCode: 404}, true},
		{"wrapped 404", fmt.Errorf("fetch manifest: %w", &NetworkError{URL: "u", StatusCode: 404}), true},
		{"500", &NetworkError{URL: "u", StatusCode: 500}, false},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimitExceeded(t *testing.T) {
	err := fmt.Errorf("page 3: %w", &RateLimitExceededError{URL: "u", Attempts: 5})

	if !IsRateLimitExceeded(err) {
		t.Error("IsRateLimitExceeded() = false, want true")
	}
	if IsRateLimitExceeded(&NetworkError{StatusCode: 403}) {
		t.Error("NetworkError should not be reported as rate limit exhaustion")
	}
}

func TestNetworkError_MessageNamesURL(t *testing.T) {
	err := &NetworkError{URL: "https://example.com/SHA256SUMS", StatusCode: 500}

	if !strings.Contains(err.Error(), "https://example.com/SHA256SUMS") {
		t.Errorf("Error() = %q, want it to contain the URL", err.Error())
	}
}
