package validator

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/seolens/indexcheck/internal/metrics"
)

// DefaultConcurrency caps simultaneous in-flight fetches. Courtesy toward
// target servers, not a per-request negotiation.
const DefaultConcurrency = 8

// Config controls Engine behavior.
type Config struct {
	Concurrency int
}

// Engine validates batches of URLs.
type Engine struct {
	fetcher Fetcher
	cache   ResultCache
	cfg     Config
	logger  *zap.Logger
}

// New constructs an Engine. A nil logger disables logging without changing
// validation behavior.
func New(fetcher Fetcher, cache ResultCache, cfg Config, logger *zap.Logger) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Validate classifies every distinct normalized non-blank URL in the input
// and returns exactly one Result per key, ordered per SortResults.
func (e *Engine) Validate(ctx context.Context, urls []string) []Result {
	inputs := normalizeInputs(urls)
	collected := newResultSet(len(inputs))

	pending := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.malformed {
			collected.add(Result{
				URL:      in.key,
				Status:   StatusInvalid,
				Details:  detailMalformed,
				Category: Categorize(in.key),
			})
			continue
		}
		if cached, ok := e.cache.Get(in.key); ok {
			metrics.ObserveCache(true)
			collected.add(cached)
			continue
		}
		metrics.ObserveCache(false)
		pending = append(pending, in.key)
	}

	e.dispatch(ctx, pending, collected)

	// Reconcile: every input key must appear exactly once, even if a worker
	// dropped its result.
	for _, in := range inputs {
		if collected.has(in.key) {
			continue
		}
		e.logger.Warn("url missing from result set", zap.String("url", in.key))
		collected.add(Result{
			URL:      in.key,
			Status:   StatusInvalid,
			Details:  detailNotProcessed,
			Category: Categorize(in.key),
		})
	}

	results := collected.list()
	for _, res := range results {
		metrics.ObserveValidation(string(res.Status))
	}
	SortResults(results)
	e.logger.Info("batch validated",
		zap.Int("input", len(urls)),
		zap.Int("distinct", len(inputs)),
		zap.Int("fetched", len(pending)),
	)
	return results
}

// dispatch fans pending URLs out to a fixed pool of workers. Completion order
// is irrelevant; ordering is imposed once at the end of Validate.
func (e *Engine) dispatch(ctx context.Context, pending []string, collected *resultSet) {
	if len(pending) == 0 {
		return
	}
	jobs := make(chan string)
	var wg sync.WaitGroup
	workers := e.cfg.Concurrency
	if workers > len(pending) {
		workers = len(pending)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				res := e.classify(ctx, target)
				e.cache.Put(target, res)
				collected.add(res)
			}
		}()
	}
	for _, target := range pending {
		jobs <- target
	}
	close(jobs)
	wg.Wait()
}

// resultSet is the concurrency-safe unordered result collection.
type resultSet struct {
	mu      sync.Mutex
	results map[string]Result
}

func newResultSet(capacity int) *resultSet {
	return &resultSet{results: make(map[string]Result, capacity)}
}

func (s *resultSet) add(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.URL] = res
}

func (s *resultSet) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.results[key]
	return ok
}

func (s *resultSet) list() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, 0, len(s.results))
	for _, res := range s.results {
		out = append(out, res)
	}
	return out
}
