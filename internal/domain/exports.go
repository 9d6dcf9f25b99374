package domain

import (
	interfaces "yatra/internal/domain/interfaces"
	types "yatra/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username           = types.Username
	CredentialSlot     = types.CredentialSlot
	Amount             = types.Amount
	LatLng             = types.LatLng
	User               = types.User
	TokenPair          = types.TokenPair
	RegisterInput      = types.RegisterInput
	LoginInput         = types.LoginInput
	Stop               = types.Stop
	NearbyStop         = types.NearbyStop
	BusRoute           = types.BusRoute
	TripPattern        = types.TripPattern
	PatternStop        = types.PatternStop
	RouteShape         = types.RouteShape
	Fare               = types.Fare
	BusTrip            = types.BusTrip
	TripStopTime       = types.TripStopTime
	Schedule           = types.Schedule
	RouteQuery         = types.RouteQuery
	NextBus            = types.NextBus
	RouteOption        = types.RouteOption
	UserType           = types.UserType
	FareQuery          = types.FareQuery
	FareEstimate       = types.FareEstimate
	FareBreakdown      = types.FareBreakdown
	PassOption         = types.PassOption
	QuoteInput         = types.QuoteInput
	PassQuote          = types.PassQuote
	PassRecommendation = types.PassRecommendation
	Favourite          = types.Favourite
	FavouriteInput     = types.FavouriteInput
	Feedback           = types.Feedback
	FeedbackInput      = types.FeedbackInput
	FeedbackStats      = types.FeedbackStats
	SessionStatus      = types.SessionStatus
	RouteSummary       = types.RouteSummary
	FareRequest        = types.FareRequest
	FareSummary        = types.FareSummary
	Dashboard          = types.Dashboard
)

// Credential slots.
const (
	SlotAccess  = types.SlotAccess
	SlotRefresh = types.SlotRefresh
)

// Passenger categories.
const (
	UserDefault = types.UserDefault
	UserStudent = types.UserStudent
	UserSenior  = types.UserSenior
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialStore = interfaces.CredentialStore
	AuthAPI         = interfaces.AuthAPI
	RouteAPI        = interfaces.RouteAPI
	StopAPI         = interfaces.StopAPI
	FareAPI         = interfaces.FareAPI
	FavouriteAPI    = interfaces.FavouriteAPI
	FeedbackAPI     = interfaces.FeedbackAPI
	TransitAPI      = interfaces.TransitAPI

	SessionService   = interfaces.SessionService
	CatalogService   = interfaces.CatalogService
	SuggestService   = interfaces.SuggestService
	FareService      = interfaces.FareService
	DashboardService = interfaces.DashboardService
)
