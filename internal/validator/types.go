// Package validator implements the URL validation engine: normalization and
// deduplication, bounded-concurrency dispatch, per-URL status classification,
// noindex detection, reconciliation, and deterministic result ordering.
package validator

import (
	"io"
	"net/http"
	"time"
)

// Status is the terminal classification of one validated URL.
type Status string

// Status values reported per URL.
const (
	StatusIndexed     Status = "indexed"
	StatusInvalid     Status = "invalid"
	StatusNotFound    Status = "not_found"
	StatusServerError Status = "server_error"
	StatusNoIndex     Status = "noindex"
	StatusEmptyPage   Status = "empty_page"
)

// Category is the content bucket derived from the URL path.
type Category string

// Category values assigned by the path rules.
const (
	CategoryJobListings   Category = "job_listings"
	CategoryArticles      Category = "articles"
	CategoryNews          Category = "news"
	CategoryEvents        Category = "events"
	CategoryCompany       Category = "company"
	CategoryProducts      Category = "products"
	CategorySupport       Category = "support"
	CategoryUncategorized Category = "uncategorized"
)

// Result is the immutable outcome for one normalized URL.
type Result struct {
	URL      string            `json:"url"`
	Status   Status            `json:"status"`
	Details  string            `json:"details,omitempty"`
	Category Category          `json:"category"`
	MetaTags map[string]string `json:"meta_tags,omitempty"`
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL    string
	Header http.Header
}

// FetchResponse is returned by a Fetcher implementation. Body is capped and
// unread at return time so header-only verdicts never download content.
type FetchResponse struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
	Duration   time.Duration
}

// FailureKind distinguishes root causes of a failed fetch.
type FailureKind string

// Failure kinds produced by Fetcher implementations.
const (
	FailureTimeout    FailureKind = "timeout"
	FailureConnection FailureKind = "connection"
	FailureOther      FailureKind = "other"
)

// FetchFailure is the structured error every Fetcher returns instead of raw
// transport errors.
type FetchFailure struct {
	Kind    FailureKind
	Message string
}

// Error implements the error interface.
func (f *FetchFailure) Error() string {
	return string(f.Kind) + ": " + f.Message
}
