package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"yatra/internal/domain"
)

const recentFeedbackLimit = 5

func (s *Server) handleFavourites(w http.ResponseWriter, _ *http.Request, _ domain.Username) {
	s.mu.Lock()
	out := append([]domain.Favourite{}, s.favourites...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserFavourites(w http.ResponseWriter, _ *http.Request, user domain.Username) {
	s.mu.Lock()
	out := []domain.Favourite{}
	for _, f := range s.favourites {
		if f.Username == user {
			out = append(out, f)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddFavourite(w http.ResponseWriter, r *http.Request, user domain.Username) {
	var in domain.FavouriteInput
	if err := decodeJSON(r, &in); err != nil || strings.TrimSpace(in.RouteIdentifier) == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"route_identifier": {"This field is required."}})
		return
	}
	fav := domain.Favourite{Username: user, RouteIdentifier: in.RouteIdentifier}
	if in.Source != "" {
		fav.Source = &in.Source
	}
	if in.Destination != "" {
		fav.Destination = &in.Destination
	}
	s.mu.Lock()
	fav.ID = s.nextFavID
	s.nextFavID++
	s.favourites = append(s.favourites, fav)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleDeleteFavourite(w http.ResponseWriter, r *http.Request, user domain.Username) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favourites {
		if f.ID == id && f.Username == user {
			s.favourites = append(s.favourites[:i], s.favourites[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "No Favourite matches the given query.")
}

// sentimentFor labels feedback by rating. The real backend runs a model.
func sentimentFor(rating int) string {
	switch {
	case rating >= 4:
		return "positive"
	case rating == 3:
		return "neutral"
	default:
		return "negative"
	}
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request, user domain.Username) {
	var in domain.FeedbackInput
	if err := decodeJSON(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	if strings.TrimSpace(in.Comment) == "" || in.Rating < 1 || in.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"rating": {"Ensure this value is between 1 and 5."}})
		return
	}
	label := sentimentFor(in.Rating)
	fb := domain.Feedback{
		Username:  user,
		Comment:   in.Comment,
		Rating:    in.Rating,
		Sentiment: &label,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	fb.ID = s.nextFbID
	s.nextFbID++
	s.feedback = append(s.feedback, fb)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, fb)
}

func (s *Server) handleFeedback(w http.ResponseWriter, _ *http.Request, _ domain.Username) {
	s.mu.Lock()
	out := append([]domain.Feedback{}, s.feedback...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecentFeedback(w http.ResponseWriter, _ *http.Request, _ domain.Username) {
	s.mu.Lock()
	out := append([]domain.Feedback{}, s.feedback...)
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > recentFeedbackLimit {
		out = out[:recentFeedbackLimit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUserFeedback(w http.ResponseWriter, _ *http.Request, user domain.Username) {
	s.mu.Lock()
	out := []domain.Feedback{}
	for _, fb := range s.feedback {
		if fb.Username == user {
			out = append(out, fb)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFeedbackStats(w http.ResponseWriter, _ *http.Request, _ domain.Username) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := domain.FeedbackStats{SentimentBreakdown: map[string]int{}}
	sum := 0
	for _, fb := range s.feedback {
		stats.Total++
		sum += fb.Rating
		if fb.Sentiment != nil {
			stats.SentimentBreakdown[*fb.Sentiment]++
		}
	}
	if stats.Total > 0 {
		stats.AverageRating = float64(sum) / float64(stats.Total)
	}
	writeJSON(w, http.StatusOK, stats)
}
