package interfaces

import (
	"context"

	domaintypes "yatra/internal/domain/types"
)

// AuthAPI covers registration, login and the profile endpoint.
type AuthAPI interface {
	Register(ctx context.Context, in domaintypes.RegisterInput) (domaintypes.User, error)
	Login(ctx context.Context, username domaintypes.Username, password string) (domaintypes.TokenPair, error)
	Me(ctx context.Context) (domaintypes.User, error)
}

// RouteAPI reads routes, trips, schedules and journey options.
type RouteAPI interface {
	Routes(ctx context.Context) ([]domaintypes.BusRoute, error)
	Route(ctx context.Context, id int64) (domaintypes.BusRoute, error)
	RouteTrips(ctx context.Context, id int64) ([]domaintypes.BusTrip, error)
	Schedules(ctx context.Context) ([]domaintypes.Schedule, error)
	FindRoute(ctx context.Context, q domaintypes.RouteQuery) ([]domaintypes.RouteOption, error)
}

// StopAPI looks up stops.
type StopAPI interface {
	SearchStops(ctx context.Context, q string) ([]domaintypes.Stop, error)
	NearbyStops(ctx context.Context, lat, lng, radiusM float64) ([]domaintypes.NearbyStop, error)
	StopCoordinates(ctx context.Context) ([]domaintypes.Stop, error)
}

// FareAPI prices trips and passes.
type FareAPI interface {
	EstimateFare(ctx context.Context, q domaintypes.FareQuery) (domaintypes.FareEstimate, error)
	PassOptions(ctx context.Context) ([]domaintypes.PassOption, error)
	QuotePass(ctx context.Context, in domaintypes.QuoteInput) (domaintypes.PassQuote, error)
}

// FavouriteAPI manages saved journeys of the signed-in user.
type FavouriteAPI interface {
	Favourites(ctx context.Context) ([]domaintypes.Favourite, error)
	AddFavourite(ctx context.Context, in domaintypes.FavouriteInput) (domaintypes.Favourite, error)
	DeleteFavourite(ctx context.Context, id int64) error
	UserFavourites(ctx context.Context) ([]domaintypes.Favourite, error)
}

// FeedbackAPI submits and reads feedback.
type FeedbackAPI interface {
	Feedback(ctx context.Context) ([]domaintypes.Feedback, error)
	SubmitFeedback(ctx context.Context, in domaintypes.FeedbackInput) (domaintypes.Feedback, error)
	RecentFeedback(ctx context.Context) ([]domaintypes.Feedback, error)
	FeedbackStats(ctx context.Context) (domaintypes.FeedbackStats, error)
	UserFeedback(ctx context.Context) ([]domaintypes.Feedback, error)
}

// TransitAPI is the full remote API.
type TransitAPI interface {
	AuthAPI
	RouteAPI
	StopAPI
	FareAPI
	FavouriteAPI
	FeedbackAPI
}
