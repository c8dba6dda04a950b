// Package httpfetcher implements validator.Fetcher on net/http.
package httpfetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/seolens/indexcheck/internal/validator"
)

// Config controls fetch behavior.
type Config struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	MaxBodyBytes   int64
}

// DefaultUserAgent mimics a desktop browser so responses match what a real
// visitor would receive.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Fetcher issues one GET per request with a fixed header profile. The body is
// returned unread and capped, so callers can classify headers without
// downloading content.
type Fetcher struct {
	cfg    Config
	client *http.Client
}

// New builds a Fetcher with a tuned transport and per-request timeout.
func New(cfg Config) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 50 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2 * 1024 * 1024
	}

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Fetch executes a single HTTP GET. Any non-nil error is a
// *validator.FetchFailure classifying the root cause.
func (f *Fetcher) Fetch(ctx context.Context, request validator.FetchRequest) (validator.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, request.URL, nil)
	if err != nil {
		return validator.FetchResponse{}, &validator.FetchFailure{
			Kind:    validator.FailureOther,
			Message: err.Error(),
		}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", acceptHTML)
	if f.cfg.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)
	}
	for key, values := range request.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return validator.FetchResponse{}, classifyError(err)
	}

	return validator.FetchResponse{
		URL:        request.URL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       &cappedBody{reader: io.LimitReader(resp.Body, f.cfg.MaxBodyBytes), body: resp.Body},
		Duration:   time.Since(start),
	}, nil
}

// classifyError maps a transport error onto the failure taxonomy.
func classifyError(err error) *validator.FetchFailure {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &validator.FetchFailure{Kind: validator.FailureTimeout, Message: err.Error()}
	}
	message := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		// Drop the operation/URL prefix; the caller already knows the URL.
		message = urlErr.Err.Error()
	}
	return &validator.FetchFailure{Kind: validator.FailureConnection, Message: message}
}

// cappedBody limits reads to the configured cap while closing the real body.
type cappedBody struct {
	reader io.Reader
	body   io.Closer
}

func (c *cappedBody) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *cappedBody) Close() error {
	return c.body.Close()
}
