package types

// UserType selects the passenger category for fares.
type UserType string

const (
	UserDefault UserType = "default"
	UserStudent UserType = "student"
	UserSenior  UserType = "senior"
)

// FareQuery are the parameters of a fare estimate.
type FareQuery struct {
	RouteID   int64    `validate:"required,gt=0"`
	Transfers int      `validate:"gte=0,lte=3"`
	UserType  UserType `validate:"omitempty,oneof=default student senior"`
}

// FareEstimate is the priced result of a FareQuery.
type FareEstimate struct {
	RouteID   int64         `json:"route_id,omitempty"`
	UserType  UserType      `json:"user_type,omitempty"`
	Transfers int           `json:"transfers,omitempty"`
	Total     Amount        `json:"total"`
	Breakdown FareBreakdown `json:"breakdown"`
}

// FareBreakdown itemises a fare. DiscountPct is a fraction (0.25 = 25%).
type FareBreakdown struct {
	BaseFare       Amount `json:"base_fare"`
	TransferFare   Amount `json:"transfer_fare"`
	DiscountPct    Amount `json:"discount_pct"`
	DiscountAmount Amount `json:"discount_amount"`
}

// PassOption is a purchasable travel pass.
type PassOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Period string `json:"period"`
	Price  Amount `json:"price"`
}

// QuoteInput asks the server to recommend a pass.
type QuoteInput struct {
	TripsPerDay int      `json:"trips_per_day" validate:"gt=0"`
	UserType    UserType `json:"user_type" validate:"omitempty,oneof=default student senior"`
	PerTripCost float64  `json:"per_trip_cost" validate:"gte=0"`
}

// PassQuote wraps the recommended pass.
type PassQuote struct {
	Recommendation *PassRecommendation `json:"recommendation"`
}

// PassRecommendation is the cheapest plan for the quoted travel pattern.
type PassRecommendation struct {
	Plan                 string  `json:"plan"`
	Period               string  `json:"period"`
	Price                Amount  `json:"price"`
	BreakEvenTripsPerDay float64 `json:"break_even_trips_per_day"`
}
