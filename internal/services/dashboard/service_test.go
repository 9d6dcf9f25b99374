package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"yatra/internal/api"
	"yatra/internal/apitest"
	"yatra/internal/domain"
	"yatra/internal/logging"
	"yatra/internal/services/dashboard"
	"yatra/internal/store"
)

func TestLoad_AllParts(t *testing.T) {
	srv, base := apitest.Start(t)
	if _, err := srv.AddUser("asha", "asha@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	pair, err := srv.IssueTokens("asha")
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	creds := store.NewMemoryStore()
	_ = creds.Set(domain.SlotAccess, pair.Access)
	_ = creds.Set(domain.SlotRefresh, pair.Refresh)
	c, err := api.New(base, creds)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	ctx := context.Background()
	if _, err := c.AddFavourite(ctx, domain.FavouriteInput{RouteIdentifier: "45"}); err != nil {
		t.Fatalf("AddFavourite: %v", err)
	}

	d, err := dashboard.New(c, c, c, logging.Discard()).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.User.Username != "asha" || len(d.Favourites) != 1 || d.Feedback == nil || len(d.Warnings) != 0 {
		t.Fatalf("dashboard: %+v", d)
	}
}

type stubAuth struct{ err error }

func (s stubAuth) Register(context.Context, domain.RegisterInput) (domain.User, error) {
	return domain.User{}, nil
}

func (s stubAuth) Login(context.Context, domain.Username, string) (domain.TokenPair, error) {
	return domain.TokenPair{}, nil
}

func (s stubAuth) Me(context.Context) (domain.User, error) {
	return domain.User{Username: "asha"}, s.err
}

type stubFavourites struct{ err error }

func (s stubFavourites) Favourites(context.Context) ([]domain.Favourite, error) { return nil, nil }
func (s stubFavourites) AddFavourite(context.Context, domain.FavouriteInput) (domain.Favourite, error) {
	return domain.Favourite{}, nil
}
func (s stubFavourites) DeleteFavourite(context.Context, int64) error { return nil }
func (s stubFavourites) UserFavourites(context.Context) ([]domain.Favourite, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Favourite{{ID: 1}}, nil
}

type stubFeedback struct{ err error }

func (s stubFeedback) Feedback(context.Context) ([]domain.Feedback, error) { return nil, nil }
func (s stubFeedback) SubmitFeedback(context.Context, domain.FeedbackInput) (domain.Feedback, error) {
	return domain.Feedback{}, nil
}
func (s stubFeedback) RecentFeedback(context.Context) ([]domain.Feedback, error) { return nil, nil }
func (s stubFeedback) FeedbackStats(context.Context) (domain.FeedbackStats, error) {
	return domain.FeedbackStats{}, nil
}
func (s stubFeedback) UserFeedback(context.Context) ([]domain.Feedback, error) { return nil, s.err }

func TestLoad_ProfileFailureIsFatal(t *testing.T) {
	boom := errors.New("401")
	svc := dashboard.New(stubAuth{err: boom}, stubFavourites{}, stubFeedback{}, logging.Discard())
	if _, err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_PartsDegradeToEmpty(t *testing.T) {
	svc := dashboard.New(stubAuth{}, stubFavourites{err: errors.New("down")}, stubFeedback{err: errors.New("down")}, logging.Discard())
	d, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Favourites == nil || len(d.Favourites) != 0 || d.Feedback == nil || len(d.Feedback) != 0 {
		t.Fatalf("want empty lists, got %+v", d)
	}
	if len(d.Warnings) != 2 {
		t.Fatalf("warnings: %v", d.Warnings)
	}
}
