package catalog_test

import (
	"context"
	"errors"
	"testing"

	"yatra/internal/domain"
	"yatra/internal/services/catalog"
)

type fakeRoutes struct {
	routeCalls, scheduleCalls int
	err                       error
}

func stop(name string) *domain.Stop { return &domain.Stop{Name: name} }

func (f *fakeRoutes) Routes(context.Context) ([]domain.BusRoute, error) {
	f.routeCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.BusRoute{
		{ID: 1, Name: "1 Lal Darwaja - Iskcon", StartStop: stop("Lal Darwaja"), EndStop: stop("Iskcon Cross Road")},
		{ID: 2, Name: "45 Kalupur - Vastrapur", StartStop: stop("Kalupur Railway Station"), EndStop: stop("Vastrapur Lake")},
		{ID: 3, Name: "101 Maninagar - Naroda"},
	}, nil
}

func (f *fakeRoutes) Route(context.Context, int64) (domain.BusRoute, error) {
	return domain.BusRoute{}, errors.New("unused")
}

func (f *fakeRoutes) RouteTrips(context.Context, int64) ([]domain.BusTrip, error) {
	return nil, errors.New("unused")
}

func (f *fakeRoutes) Schedules(context.Context) ([]domain.Schedule, error) {
	f.scheduleCalls++
	return []domain.Schedule{
		{RouteID: 1, RouteNo: "1 Lal Darwaja - Iskcon"},
		{RouteID: 2, RouteNo: "45 Kalupur - Vastrapur"},
	}, nil
}

func (f *fakeRoutes) FindRoute(context.Context, domain.RouteQuery) ([]domain.RouteOption, error) {
	return nil, errors.New("unused")
}

func TestRoutes_FilterCaseInsensitive(t *testing.T) {
	svc := catalog.New(&fakeRoutes{}, 0)
	t.Cleanup(svc.Close)
	ctx := context.Background()

	cases := map[string][]int64{
		"":         {1, 2, 3},
		"VASTRA":   {2},
		"iskcon":   {1},
		"  101 ":   {3},
		"kalupur":  {2},
		"nowhere":  {},
		"darwaja ": {1},
	}
	for q, want := range cases {
		got, err := svc.Routes(ctx, q)
		if err != nil {
			t.Fatalf("Routes(%q): %v", q, err)
		}
		if len(got) != len(want) {
			t.Fatalf("Routes(%q): got %d rows, want %d", q, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("Routes(%q)[%d]: got id %d, want %d", q, i, got[i].ID, want[i])
			}
		}
	}
}

func TestRoutes_CachedUntilInvalidated(t *testing.T) {
	f := &fakeRoutes{}
	svc := catalog.New(f, 0)
	t.Cleanup(svc.Close)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Routes(ctx, ""); err != nil {
			t.Fatalf("Routes: %v", err)
		}
		if _, err := svc.Schedules(ctx, ""); err != nil {
			t.Fatalf("Schedules: %v", err)
		}
	}
	if f.routeCalls != 1 || f.scheduleCalls != 1 {
		t.Fatalf("calls: routes=%d schedules=%d", f.routeCalls, f.scheduleCalls)
	}
	svc.Invalidate()
	if _, err := svc.Routes(ctx, ""); err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if f.routeCalls != 2 {
		t.Fatalf("after Invalidate: routes=%d", f.routeCalls)
	}
}

func TestRoutes_ErrorNotCached(t *testing.T) {
	f := &fakeRoutes{err: errors.New("down")}
	svc := catalog.New(f, 0)
	t.Cleanup(svc.Close)
	if _, err := svc.Routes(context.Background(), ""); err == nil {
		t.Fatal("want error")
	}
	f.err = nil
	if got, err := svc.Routes(context.Background(), ""); err != nil || len(got) != 3 {
		t.Fatalf("retry: %v %d", err, len(got))
	}
}

func TestSchedules_FilterOnRouteNo(t *testing.T) {
	svc := catalog.New(&fakeRoutes{}, 0)
	t.Cleanup(svc.Close)
	got, err := svc.Schedules(context.Background(), "45")
	if err != nil {
		t.Fatalf("Schedules: %v", err)
	}
	if len(got) != 1 || got[0].RouteID != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestSummarize_MissingStops(t *testing.T) {
	s := catalog.Summarize(domain.BusRoute{ID: 9, Name: "9"})
	if s.StartStop != "" || s.EndStop != "" || s.RouteNo != "9" {
		t.Fatalf("got %+v", s)
	}
}
