package apitest

import (
	"math"
	"net/http"
	"strconv"

	"yatra/internal/domain"
)

// Canned fare table. The real backend owns pricing.
const transferSurcharge domain.Amount = 5

var discounts = map[domain.UserType]domain.Amount{
	domain.UserDefault: 0,
	domain.UserStudent: 0.5,
	domain.UserSenior:  0.3,
}

var passDays = map[string]float64{"day": 1, "week": 7, "month": 30}

func (s *Server) handleFareEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := strconv.ParseInt(q.Get("route_id"), 10, 64)
	if err != nil {
		writeErrorField(w, http.StatusBadRequest, "route_id is required")
		return
	}
	route, ok := s.fx.route(id)
	if !ok || len(route.Fares) == 0 {
		writeErrorField(w, http.StatusNotFound, "no fare for route")
		return
	}
	transfers, _ := strconv.Atoi(q.Get("transfers"))
	userType := domain.UserType(q.Get("user_type"))
	if userType == "" {
		userType = domain.UserDefault
	}
	pct, ok := discounts[userType]
	if !ok {
		writeErrorField(w, http.StatusBadRequest, "unknown user_type")
		return
	}
	base := route.Fares[0].Amount
	transferFare := transferSurcharge * domain.Amount(transfers)
	discount := round2((base + transferFare) * pct)
	writeJSON(w, http.StatusOK, domain.FareEstimate{
		RouteID:   id,
		UserType:  userType,
		Transfers: transfers,
		Total:     base + transferFare - discount,
		Breakdown: domain.FareBreakdown{
			BaseFare:       base,
			TransferFare:   transferFare,
			DiscountPct:    pct,
			DiscountAmount: discount,
		},
	})
}

func (s *Server) handlePassOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.fx.passes)
}

// handlePassQuote recommends the pass that undercuts paying per trip by the
// widest margin, or none if no pass does.
func (s *Server) handlePassQuote(w http.ResponseWriter, r *http.Request) {
	var in domain.QuoteInput
	if err := decodeJSON(r, &in); err != nil || in.TripsPerDay <= 0 {
		writeErrorField(w, http.StatusBadRequest, "trips_per_day must be a positive integer")
		return
	}
	var best *domain.PassRecommendation
	bestSaving := 0.0
	for _, p := range s.fx.passes {
		days := passDays[p.Period]
		payAsYouGo := float64(in.TripsPerDay) * in.PerTripCost * days
		saving := payAsYouGo - p.Price.Float()
		if saving <= bestSaving {
			continue
		}
		bestSaving = saving
		best = &domain.PassRecommendation{
			Plan:                 p.Name,
			Period:               p.Period,
			Price:                p.Price,
			BreakEvenTripsPerDay: math.Round(p.Price.Float()/(days*in.PerTripCost)*10) / 10,
		}
	}
	writeJSON(w, http.StatusOK, domain.PassQuote{Recommendation: best})
}

func round2(a domain.Amount) domain.Amount {
	return domain.Amount(math.Round(a.Float()*100) / 100)
}
