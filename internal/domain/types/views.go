package types

import "time"

// SessionStatus describes the locally stored credentials. Tokens are shown
// only as fingerprints.
type SessionStatus struct {
	Profile            string     `json:"profile"`
	HasAccess          bool       `json:"has_access"`
	HasRefresh         bool       `json:"has_refresh"`
	AccessFingerprint  string     `json:"access_fingerprint,omitempty"`
	RefreshFingerprint string     `json:"refresh_fingerprint,omitempty"`
	AccessExpiresAt    *time.Time `json:"access_expires_at,omitempty"`
	AccessExpired      bool       `json:"access_expired"`
}

// LoggedIn reports whether any credential is stored.
func (s SessionStatus) LoggedIn() bool { return s.HasAccess || s.HasRefresh }

// RouteSummary is the row shown in route listings.
type RouteSummary struct {
	ID        int64  `json:"id"`
	RouteNo   string `json:"routeNo"`
	StartStop string `json:"startStop"`
	EndStop   string `json:"endStop"`
}

// FareRequest drives the fare calculator. TripsPerDay defaults to 2.
type FareRequest struct {
	RouteID     int64
	Transfers   int
	UserType    UserType
	TripsPerDay int
}

// FareSummary combines an estimate with pass options and a recommendation.
// Warnings lists the steps that failed and were left empty.
type FareSummary struct {
	Estimate       FareEstimate        `json:"estimate"`
	Passes         []PassOption        `json:"passes"`
	Recommendation *PassRecommendation `json:"recommendation,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// Dashboard is the signed-in user's overview.
type Dashboard struct {
	User       User        `json:"user"`
	Favourites []Favourite `json:"favourites"`
	Feedback   []Feedback  `json:"feedback"`
	Warnings   []string    `json:"warnings,omitempty"`
}
