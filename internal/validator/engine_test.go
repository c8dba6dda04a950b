package validator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateClassifiesMixedBatch runs the broken/blocked/missing scenario
// end to end and checks the final report order.
func TestValidateClassifiesMixedBatch(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/500", response(500, nil, "oops"))
	fetcher.respond("http://x.test/404", response(404, nil, "gone"))
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{
		"http://x.test/500",
		"http://x.test/404",
		"not a url",
	})

	require.Len(t, results, 3)
	require.Equal(t, "not a url", results[0].URL)
	require.Equal(t, StatusInvalid, results[0].Status)
	require.Equal(t, "Malformed URL", results[0].Details)
	require.Equal(t, "http://x.test/404", results[1].URL)
	require.Equal(t, StatusNotFound, results[1].Status)
	require.Equal(t, "Page does not exist", results[1].Details)
	require.Equal(t, "http://x.test/500", results[2].URL)
	require.Equal(t, StatusServerError, results[2].Status)
	require.Equal(t, "HTTP 500 - Server issue", results[2].Details)
}

// TestValidateDeduplicates checks duplicate inputs yield one result and one
// fetch.
func TestValidateDeduplicates(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/a", response(200, nil, "<html><body>hi</body></html>"))
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/a", "http://x.test/a"})

	require.Len(t, results, 1)
	require.Equal(t, 1, fetcher.calls("http://x.test/a"))
}

// TestValidateMalformedNeverFetched verifies the malformed short-circuit: the
// fetcher is never consulted for unparsable input.
func TestValidateMalformedNeverFetched(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"not a url", "also not one"})

	require.Len(t, results, 2)
	for _, res := range results {
		require.Equal(t, StatusInvalid, res.Status)
		require.Equal(t, "Malformed URL", res.Details)
	}
	require.Equal(t, 0, fetcher.totalCalls())
}

// TestValidateHeaderNoindexSkipsBody checks the X-Robots-Tag verdict wins
// without reading the body, whatever the body says.
func TestValidateHeaderNoindexSkipsBody(t *testing.T) {
	t.Parallel()

	body := &trackingBody{reader: strings.NewReader("<html><body>would be indexed</body></html>")}
	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/blocked", FetchResponse{
		URL:        "http://x.test/blocked",
		StatusCode: 200,
		Header:     http.Header{"X-Robots-Tag": []string{"noindex, nofollow"}},
		Body:       body,
	})
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/blocked"})

	require.Len(t, results, 1)
	require.Equal(t, StatusNoIndex, results[0].Status)
	require.Equal(t, "Page is marked 'noindex' via HTTP headers", results[0].Details)
	require.False(t, body.read, "body should not be downloaded for a header verdict")
}

// TestValidateMetaNoindex covers the meta-robots verdict plus meta-tag
// extraction on the same result.
func TestValidateMetaNoindex(t *testing.T) {
	t.Parallel()

	html := `<html><head><meta name="robots" content="noindex"><meta name="description" content="d"></head><body>x</body></html>`
	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/meta", response(200, nil, html))
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/meta"})

	require.Len(t, results, 1)
	require.Equal(t, StatusNoIndex, results[0].Status)
	require.Equal(t, "Page contains 'noindex' meta tag", results[0].Details)
	require.Equal(t, "noindex", results[0].MetaTags["robots"])
	require.Equal(t, "d", results[0].MetaTags["description"])
}

// TestValidateEmptyBody maps whitespace-only content to EmptyPage.
func TestValidateEmptyBody(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/empty", response(200, nil, "   \n\t"))
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/empty"})

	require.Len(t, results, 1)
	require.Equal(t, StatusEmptyPage, results[0].Status)
	require.Equal(t, "No content found", results[0].Details)
}

// TestValidateIndexedPage checks the happy path, including Indexed details
// and attached meta tags.
func TestValidateIndexedPage(t *testing.T) {
	t.Parallel()

	html := `<html><head><meta name="robots" content="index, follow"></head><body>fine</body></html>`
	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/jobs/1", response(200, nil, html))
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/jobs/1"})

	require.Len(t, results, 1)
	require.Equal(t, StatusIndexed, results[0].Status)
	require.Equal(t, "Page is NOT noindexed", results[0].Details)
	require.Equal(t, CategoryJobListings, results[0].Category)
	require.Equal(t, "index, follow", results[0].MetaTags["robots"])
}

// TestValidateFetchFailures maps timeout and connection failures onto
// distinct statuses and root-cause details.
func TestValidateFetchFailures(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.fail("http://x.test/slow", &FetchFailure{Kind: FailureTimeout, Message: "deadline exceeded"})
	fetcher.fail("http://x.test/down", &FetchFailure{Kind: FailureConnection, Message: "connection refused"})
	engine := New(fetcher, newFakeCache(), Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/slow", "http://x.test/down"})

	require.Len(t, results, 2)
	byURL := map[string]Result{}
	for _, res := range results {
		byURL[res.URL] = res
	}
	require.Equal(t, StatusServerError, byURL["http://x.test/slow"].Status)
	require.Equal(t, "Request timed out", byURL["http://x.test/slow"].Details)
	require.Equal(t, StatusInvalid, byURL["http://x.test/down"].Status)
	require.Equal(t, "Connection failed: connection refused", byURL["http://x.test/down"].Details)
}

// TestValidateUsesCache confirms a cached result short-circuits the fetcher
// and comes back unmodified.
func TestValidateUsesCache(t *testing.T) {
	t.Parallel()

	cached := Result{
		URL:      "http://x.test/hit",
		Status:   StatusIndexed,
		Details:  "Page is NOT noindexed",
		Category: CategoryUncategorized,
	}
	cacheStore := newFakeCache()
	cacheStore.Put("http://x.test/hit", cached)
	fetcher := newFakeFetcher()
	engine := New(fetcher, cacheStore, Config{}, nil)

	results := engine.Validate(context.Background(), []string{"http://x.test/hit"})

	require.Len(t, results, 1)
	require.Equal(t, cached, results[0])
	require.Equal(t, 0, fetcher.totalCalls())
}

// TestValidateWritesCache confirms each classified result lands in the cache.
func TestValidateWritesCache(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.respond("http://x.test/a", response(200, nil, "<html><body>a</body></html>"))
	cacheStore := newFakeCache()
	engine := New(fetcher, cacheStore, Config{}, nil)

	engine.Validate(context.Background(), []string{"http://x.test/a"})

	stored, ok := cacheStore.Get("http://x.test/a")
	require.True(t, ok)
	require.Equal(t, StatusIndexed, stored.Status)
}

// TestValidateCompleteness fans a larger batch through a small pool and
// checks one result per distinct input comes back.
func TestValidateCompleteness(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	urls := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		u := fmt.Sprintf("http://x.test/p/%d", i)
		urls = append(urls, u)
		fetcher.respond(u, response(200, nil, "<html><body>ok</body></html>"))
	}
	urls = append(urls, "not a url", "  ", "")

	engine := New(fetcher, newFakeCache(), Config{Concurrency: 3}, nil)
	results := engine.Validate(context.Background(), urls)

	require.Len(t, results, 31)
	seen := map[string]struct{}{}
	for _, res := range results {
		require.NotEmpty(t, res.URL)
		require.NotEmpty(t, res.Status)
		_, dup := seen[res.URL]
		require.False(t, dup, "duplicate result for %s", res.URL)
		seen[res.URL] = struct{}{}
	}
}

// fakeFetcher serves canned responses and failures keyed by URL, counting
// calls. Unknown URLs fail as connection errors.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]FetchResponse
	failures  map[string]*FetchFailure
	counts    map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: map[string]FetchResponse{},
		failures:  map[string]*FetchFailure{},
		counts:    map[string]int{},
	}
}

func (f *fakeFetcher) respond(url string, resp FetchResponse) {
	f.responses[url] = resp
}

func (f *fakeFetcher) fail(url string, failure *FetchFailure) {
	f.failures[url] = failure
}

func (f *fakeFetcher) Fetch(_ context.Context, request FetchRequest) (FetchResponse, error) {
	f.mu.Lock()
	f.counts[request.URL]++
	f.mu.Unlock()
	if failure, ok := f.failures[request.URL]; ok {
		return FetchResponse{}, failure
	}
	if resp, ok := f.responses[request.URL]; ok {
		return resp, nil
	}
	return FetchResponse{}, &FetchFailure{Kind: FailureConnection, Message: "no such host"}
}

func (f *fakeFetcher) calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[url]
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.counts {
		total += n
	}
	return total
}

func response(status int, header http.Header, body string) FetchResponse {
	if header == nil {
		header = http.Header{}
	}
	header.Set("Content-Type", "text/html; charset=utf-8")
	return FetchResponse{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// fakeCache is a minimal in-memory ResultCache without TTL semantics.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]Result
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]Result{}}
}

func (c *fakeCache) Get(url string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[url]
	return res, ok
}

func (c *fakeCache) Put(url string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = result
}

type trackingBody struct {
	reader io.Reader
	read   bool
}

func (b *trackingBody) Read(p []byte) (int, error) {
	b.read = true
	return b.reader.Read(p)
}

func (b *trackingBody) Close() error {
	return nil
}
