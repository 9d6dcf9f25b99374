package apitest

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"yatra/internal/domain"
	"yatra/internal/geo"
)

const defaultNearbyRadius = 1000

func (s *Server) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.fx.routes)
}

func (s *Server) routeFromPath(w http.ResponseWriter, r *http.Request) (domain.BusRoute, bool) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	route, ok := s.fx.route(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "No BusRoute matches the given query.")
	}
	return route, ok
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	if route, ok := s.routeFromPath(w, r); ok {
		writeJSON(w, http.StatusOK, route)
	}
}

func (s *Server) handleRouteTrips(w http.ResponseWriter, r *http.Request) {
	route, ok := s.routeFromPath(w, r)
	if !ok {
		return
	}
	trips := s.fx.trips[route.ID]
	if trips == nil {
		trips = []domain.BusTrip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleSchedules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.fx.schedules)
}

func (s *Server) handleFindRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, dest := strings.TrimSpace(q.Get("source")), strings.TrimSpace(q.Get("destination"))
	if source == "" || dest == "" {
		writeErrorField(w, http.StatusBadRequest, "Source and destination are required.")
		return
	}
	opts := s.fx.options[optionKey(source, dest)]
	if opts == nil {
		opts = []domain.RouteOption{}
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleSearchStops(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := []domain.Stop{}
	for _, st := range s.fx.stops {
		if strings.Contains(strings.ToLower(st.Name), q) {
			out = append(out, st)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNearbyStops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeErrorField(w, http.StatusBadRequest, "lat: "+err.Error())
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		writeErrorField(w, http.StatusBadRequest, "lng: "+err.Error())
		return
	}
	radius := float64(defaultNearbyRadius)
	if v := q.Get("radius"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil {
			writeErrorField(w, http.StatusBadRequest, "radius: "+err.Error())
			return
		}
	}
	here := domain.LatLng{lat, lng}
	box := geo.Around(here, radius)
	out := []domain.NearbyStop{}
	for _, st := range s.fx.stops {
		if !box.Contains(st.Position()) {
			continue
		}
		d := geo.HaversineMeters(here, st.Position())
		if d <= radius {
			out = append(out, domain.NearbyStop{Stop: st, DistanceM: int(math.Round(d))})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStopCoordinates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.fx.stops)
}
