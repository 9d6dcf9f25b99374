package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"yatra/internal/cache"
	"yatra/internal/domain"
)

// ErrSuperseded is returned for a lookup overtaken by a newer one.
var ErrSuperseded = errors.New("suggestion superseded by a newer query")

const (
	// DefaultMinLength is the shortest query that triggers a lookup.
	DefaultMinLength = 2
	// DefaultTTL is how long a query's suggestions stay cached.
	DefaultTTL = 2 * time.Minute
)

// Service issues stop lookups in generation order.
type Service struct {
	stops  domain.StopAPI
	minLen int
	cache  *cache.Cache[[]domain.Stop]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// New constructs a suggest Service. Non-positive minLen and ttl select the
// defaults.
func New(stops domain.StopAPI, minLen int, ttl time.Duration) *Service {
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{stops: stops, minLen: minLen, cache: cache.New[[]domain.Stop](ttl, ttl)}
}

// Suggest returns stops matching query, or ErrSuperseded if another call to
// Suggest started before this one finished.
func (s *Service) Suggest(ctx context.Context, query string) ([]domain.Stop, error) {
	q := strings.TrimSpace(query)
	key := strings.ToLower(q)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if utf8.RuneCountInString(q) < s.minLen {
		s.mu.Unlock()
		return nil, nil
	}
	if hit, ok := s.cache.Get(key); ok {
		s.mu.Unlock()
		return hit, nil
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	stops, err := s.stops.SearchStops(lookupCtx, q)
	if err == nil {
		s.cache.Set(key, stops)
	}

	s.mu.Lock()
	current := s.gen == gen
	if current {
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, fmt.Errorf("search stops %q: %w", q, err)
	}
	return stops, nil
}

// Close stops the cache's cleanup goroutine.
func (s *Service) Close() { s.cache.Stop() }

// Compile-time assertion that Service implements domain.SuggestService.
var _ domain.SuggestService = (*Service)(nil)
