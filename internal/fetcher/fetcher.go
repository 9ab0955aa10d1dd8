// Package fetcher is the HTTP download layer for SEC endpoints: per-host
// rate limiting under the SEC fair-access policy, retry with exponential
// backoff, and adaptive slowdown on 429 responses.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
