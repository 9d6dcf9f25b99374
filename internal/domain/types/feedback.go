package types

import "time"

// Favourite is a saved journey.
type Favourite struct {
	ID              int64    `json:"id"`
	Username        Username `json:"username"`
	RouteIdentifier string   `json:"route_identifier"`
	Source          *string  `json:"source"`
	Destination     *string  `json:"destination"`
}

// FavouriteInput creates a favourite.
type FavouriteInput struct {
	RouteIdentifier string `json:"route_identifier" validate:"required,max=100"`
	Source          string `json:"source,omitempty" validate:"max=255"`
	Destination     string `json:"destination,omitempty" validate:"max=255"`
}

// Feedback is a rated comment. Sentiment is assigned by the server.
type Feedback struct {
	ID        int64     `json:"id"`
	Username  Username  `json:"username"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	Sentiment *string   `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackInput submits feedback.
type FeedbackInput struct {
	Comment string `json:"comment" validate:"required"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
}

// FeedbackStats aggregates all feedback.
type FeedbackStats struct {
	Total              int            `json:"total"`
	AverageRating      float64        `json:"average_rating"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
}
