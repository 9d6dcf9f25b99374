package interfaces

import (
	"context"

	domaintypes "yatra/internal/domain/types"
)

// SessionService logs in and out and reports the stored credentials.
type SessionService interface {
	Register(ctx context.Context, in domaintypes.RegisterInput) (domaintypes.User, error)
	Login(ctx context.Context, username domaintypes.Username, password string) error
	Logout() error
	WhoAmI(ctx context.Context) (domaintypes.User, error)
	Status() (domaintypes.SessionStatus, error)
}

// CatalogService lists routes and schedules with client-side filtering.
type CatalogService interface {
	Routes(ctx context.Context, query string) ([]domaintypes.RouteSummary, error)
	Schedules(ctx context.Context, query string) ([]domaintypes.Schedule, error)
	Invalidate()
	Close()
}

// SuggestService completes stop names as the user types.
type SuggestService interface {
	Suggest(ctx context.Context, query string) ([]domaintypes.Stop, error)
	Close()
}

// FareService runs the fare calculator.
type FareService interface {
	Calculate(ctx context.Context, req domaintypes.FareRequest) (domaintypes.FareSummary, error)
}

// DashboardService loads the user overview.
type DashboardService interface {
	Load(ctx context.Context) (domaintypes.Dashboard, error)
}
