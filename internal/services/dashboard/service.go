package dashboard

import (
	"context"
	"fmt"
	"sync"

	"yatra/internal/domain"
	"yatra/internal/logging"
)

// Service assembles the dashboard.
type Service struct {
	auth       domain.AuthAPI
	favourites domain.FavouriteAPI
	feedback   domain.FeedbackAPI
	log        *logging.Logger
}

// New constructs a dashboard Service.
func New(auth domain.AuthAPI, favourites domain.FavouriteAPI, feedback domain.FeedbackAPI, log *logging.Logger) *Service {
	return &Service{auth: auth, favourites: favourites, feedback: feedback, log: log}
}

// Load fetches the three parts in parallel. A profile failure fails the
// whole load; favourites and feedback degrade to empty lists.
func (s *Service) Load(ctx context.Context) (domain.Dashboard, error) {
	var (
		wg                     sync.WaitGroup
		out                    domain.Dashboard
		userErr, favErr, fbErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		out.User, userErr = s.auth.Me(ctx)
	}()
	go func() {
		defer wg.Done()
		out.Favourites, favErr = s.favourites.UserFavourites(ctx)
	}()
	go func() {
		defer wg.Done()
		out.Feedback, fbErr = s.feedback.UserFeedback(ctx)
	}()
	wg.Wait()

	if userErr != nil {
		return domain.Dashboard{}, fmt.Errorf("load profile: %w", userErr)
	}
	if favErr != nil {
		s.warn(&out, "favourites", favErr)
		out.Favourites = []domain.Favourite{}
	}
	if fbErr != nil {
		s.warn(&out, "feedback", fbErr)
		out.Feedback = []domain.Feedback{}
	}
	if out.Favourites == nil {
		out.Favourites = []domain.Favourite{}
	}
	if out.Feedback == nil {
		out.Feedback = []domain.Feedback{}
	}
	return out, nil
}

func (s *Service) warn(out *domain.Dashboard, part string, err error) {
	s.log.Warnf("dashboard: %s unavailable: %v", part, err)
	out.Warnings = append(out.Warnings, fmt.Sprintf("%s unavailable: %v", part, err))
}

// Compile-time assertion that Service implements domain.DashboardService.
var _ domain.DashboardService = (*Service)(nil)
