package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yatra/internal/cache"
	"yatra/internal/domain"
)

// DefaultTTL is how long listings stay cached.
const DefaultTTL = 5 * time.Minute

const (
	keyRoutes    = "routes"
	keySchedules = "schedules"
)

// Service serves filtered route and schedule listings.
type Service struct {
	api       domain.RouteAPI
	routes    *cache.Cache[[]domain.RouteSummary]
	schedules *cache.Cache[[]domain.Schedule]
}

// New constructs a catalog Service caching listings for ttl (DefaultTTL if zero).
func New(api domain.RouteAPI, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		api:       api,
		routes:    cache.New[[]domain.RouteSummary](ttl, ttl),
		schedules: cache.New[[]domain.Schedule](ttl, ttl),
	}
}

// Summarize maps a route to its listing row. Missing terminal stops render
// as "".
func Summarize(r domain.BusRoute) domain.RouteSummary {
	s := domain.RouteSummary{ID: r.ID, RouteNo: r.Name}
	if r.StartStop != nil {
		s.StartStop = r.StartStop.Name
	}
	if r.EndStop != nil {
		s.EndStop = r.EndStop.Name
	}
	return s
}

// Routes returns the routes matching query.
func (s *Service) Routes(ctx context.Context, query string) ([]domain.RouteSummary, error) {
	all, ok := s.routes.Get(keyRoutes)
	if !ok {
		routes, err := s.api.Routes(ctx)
		if err != nil {
			return nil, fmt.Errorf("list routes: %w", err)
		}
		all = make([]domain.RouteSummary, 0, len(routes))
		for _, r := range routes {
			all = append(all, Summarize(r))
		}
		s.routes.Set(keyRoutes, all)
	}
	return FilterRoutes(all, query), nil
}

// Schedules returns the schedules whose route number matches query.
func (s *Service) Schedules(ctx context.Context, query string) ([]domain.Schedule, error) {
	all, ok := s.schedules.Get(keySchedules)
	if !ok {
		var err error
		if all, err = s.api.Schedules(ctx); err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		s.schedules.Set(keySchedules, all)
	}
	return FilterSchedules(all, query), nil
}

// Invalidate drops cached listings.
func (s *Service) Invalidate() {
	s.routes.Clear()
	s.schedules.Clear()
}

// Close stops the caches' cleanup goroutines.
func (s *Service) Close() {
	s.routes.Stop()
	s.schedules.Stop()
}

// FilterRoutes keeps the routes whose number or terminal stops contain query.
func FilterRoutes(routes []domain.RouteSummary, query string) []domain.RouteSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.RouteSummary, 0, len(routes))
	for _, r := range routes {
		if q == "" ||
			strings.Contains(strings.ToLower(r.RouteNo), q) ||
			strings.Contains(strings.ToLower(r.StartStop), q) ||
			strings.Contains(strings.ToLower(r.EndStop), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSchedules keeps the schedules whose route number contains query.
func FilterSchedules(schedules []domain.Schedule, query string) []domain.Schedule {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if q == "" || strings.Contains(strings.ToLower(s.RouteNo), q) {
			out = append(out, s)
		}
	}
	return out
}

// Compile-time assertion that Service implements domain.CatalogService.
var _ domain.CatalogService = (*Service)(nil)
