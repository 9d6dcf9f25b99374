package fare

import (
	"context"
	"fmt"

	"yatra/internal/domain"
	"yatra/internal/logging"
)

// DefaultTripsPerDay is assumed when a request leaves TripsPerDay unset.
const DefaultTripsPerDay = 2

// Service prices trips and passes through the fare endpoints.
type Service struct {
	api domain.FareAPI
	log *logging.Logger
}

// New constructs a fare Service.
func New(api domain.FareAPI, log *logging.Logger) *Service {
	return &Service{api: api, log: log}
}

// Calculate estimates the fare for req and attaches pass options and a
// recommendation when the server provides them.
func (s *Service) Calculate(ctx context.Context, req domain.FareRequest) (domain.FareSummary, error) {
	var out domain.FareSummary
	if req.UserType == "" {
		req.UserType = domain.UserDefault
	}
	if req.TripsPerDay <= 0 {
		req.TripsPerDay = DefaultTripsPerDay
	}

	est, err := s.api.EstimateFare(ctx, domain.FareQuery{
		RouteID:   req.RouteID,
		Transfers: req.Transfers,
		UserType:  req.UserType,
	})
	if err != nil {
		return out, fmt.Errorf("estimate fare for route %d: %w", req.RouteID, err)
	}
	out.Estimate = est

	passes, err := s.api.PassOptions(ctx)
	if err != nil {
		s.degrade(&out, "pass options", err)
	} else {
		out.Passes = passes
	}

	quote, err := s.api.QuotePass(ctx, domain.QuoteInput{
		TripsPerDay: req.TripsPerDay,
		UserType:    req.UserType,
		PerTripCost: est.Total.Float(),
	})
	if err != nil {
		s.degrade(&out, "pass quote", err)
	} else {
		out.Recommendation = quote.Recommendation
	}
	return out, nil
}

func (s *Service) degrade(out *domain.FareSummary, step string, err error) {
	s.log.Warnf("fare calculator: %s unavailable: %v", step, err)
	out.Warnings = append(out.Warnings, fmt.Sprintf("%s unavailable: %v", step, err))
}

// Compile-time assertion that Service implements domain.FareService.
var _ domain.FareService = (*Service)(nil)
