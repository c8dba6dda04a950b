package validator

import (
	"context"
	"time"
)

// Fetcher fetches a URL and returns the response headers plus a lazily
// readable body. Any non-nil error is a *FetchFailure.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// ResultCache stores previously computed results keyed by normalized URL.
// A stale entry is reported as absent.
type ResultCache interface {
	Get(url string) (Result, bool)
	Put(url string, result Result)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
