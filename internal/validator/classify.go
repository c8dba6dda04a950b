package validator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/seolens/indexcheck/internal/metrics"
)

// Details strings attached to results. Part of the response contract: each
// one must be enough to tell root causes apart.
const (
	detailMalformed    = "Malformed URL"
	detailTimeout      = "Request timed out"
	detailNotFound     = "Page does not exist"
	detailNoindexHead  = "Page is marked 'noindex' via HTTP headers"
	detailNoindexMeta  = "Page contains 'noindex' meta tag"
	detailReadError    = "Error reading content"
	detailNoContent    = "No content found"
	detailIndexed      = "Page is NOT noindexed"
	detailNotProcessed = "URL was not processed"
)

// classify runs the full state machine for one well-formed, non-cached URL.
// Rules are evaluated top to bottom; the first match is terminal. Every
// failure is absorbed into a Result, never returned.
func (e *Engine) classify(ctx context.Context, target string) Result {
	res := Result{URL: target, Category: Categorize(target)}

	metrics.IncInFlightFetches()
	resp, err := e.fetcher.Fetch(ctx, FetchRequest{URL: target})
	metrics.DecInFlightFetches()
	if err != nil {
		failure := asFetchFailure(err)
		if failure.Kind == FailureTimeout {
			e.logger.Warn("fetch timed out", zap.String("url", target))
			res.Status = StatusServerError
			res.Details = detailTimeout
			return res
		}
		e.logger.Warn("fetch failed", zap.String("url", target), zap.String("cause", failure.Message))
		res.Status = StatusInvalid
		res.Details = "Connection failed: " + failure.Message
		return res
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	metrics.ObserveFetch(resp.StatusCode, resp.Duration)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		res.Status = StatusNotFound
		res.Details = detailNotFound
		return res
	case resp.StatusCode >= 500:
		res.Status = StatusServerError
		res.Details = fmt.Sprintf("HTTP %d - Server issue", resp.StatusCode)
		return res
	case resp.StatusCode < 200 || resp.StatusCode >= 400:
		res.Status = StatusInvalid
		res.Details = fmt.Sprintf("HTTP %d - Request failed", resp.StatusCode)
		return res
	}

	// Header verdict first: no body download needed to honor X-Robots-Tag.
	for _, v := range resp.Header.Values("X-Robots-Tag") {
		if ContainsNoindex(v) {
			res.Status = StatusNoIndex
			res.Details = detailNoindexHead
			return res
		}
	}

	page, err := InspectPage(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		e.logger.Debug("body unreadable", zap.String("url", target), zap.Error(err))
		res.Status = StatusEmptyPage
		res.Details = detailReadError
		return res
	}
	if page.Blank {
		res.Status = StatusEmptyPage
		res.Details = detailNoContent
		return res
	}

	res.MetaTags = page.MetaTags
	if page.Noindex {
		res.Status = StatusNoIndex
		res.Details = detailNoindexMeta
		return res
	}
	res.Status = StatusIndexed
	res.Details = detailIndexed
	return res
}

// asFetchFailure recovers the structured failure from a fetch error,
// downgrading anything unexpected to a connection failure.
func asFetchFailure(err error) *FetchFailure {
	var failure *FetchFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &FetchFailure{Kind: FailureConnection, Message: err.Error()}
}
