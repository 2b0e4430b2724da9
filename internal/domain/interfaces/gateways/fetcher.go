// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"net/http"
)

// Response is a fully read HTTP response
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string
func (r *Response) Text() string {
	return string(r.Body)
}

// Fetcher performs GET requests against the release feeds.
//
// Fetch returns a *NetworkError for any non-success status and a
// *RateLimitExceededError once the rate-limit retry budget is spent.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// GitHubRelease is the subset of a GitHub release object the finders read
type GitHubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []GitHubAsset `json:"assets"`
}

// GitHubAsset is the subset of a GitHub release asset the finders read
type GitHubAsset struct {
	BrowserDownloadURL string `json:"browser_download_url"`
}
