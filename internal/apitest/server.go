package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"yatra/internal/domain"
)

// Config tunes a Server. Zero values select defaults.
type Config struct {
	// Secret signs access tokens.
	Secret []byte
	// AccessTTL is the lifetime of an access token.
	AccessTTL time.Duration
	// BcryptCost is the cost of stored password hashes.
	BcryptCost int
}

type account struct {
	user domain.User
	hash []byte
}

// Server is the fake API. Create it with New and mount Router.
type Server struct {
	cfg Config
	fx  *fixtures

	mu         sync.Mutex
	accounts   map[domain.Username]*account
	nextUserID int64
	refresh    map[string]domain.Username
	generation int
	failRefr   bool
	rotate     bool
	hits       map[string]int

	favourites []domain.Favourite
	nextFavID  int64
	feedback   []domain.Feedback
	nextFbID   int64

	now func() time.Time
}

// New returns a Server loaded with fixtures and no accounts.
func New(cfg Config) *Server {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte("yatra-stub-secret")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 5 * time.Minute
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Server{
		cfg:        cfg,
		fx:         loadFixtures(),
		accounts:   make(map[domain.Username]*account),
		refresh:    make(map[string]domain.Username),
		hits:       make(map[string]int),
		nextUserID: 1,
		nextFavID:  1,
		nextFbID:   1,
		now:        time.Now,
	}
}

// Router returns the HTTP handler with every route mounted under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.countHits)
	a := r.PathPrefix("/api").Subrouter()

	a.HandleFunc("/register/", s.handleRegister).Methods(http.MethodPost)
	a.HandleFunc("/auth/login/", s.handleLogin).Methods(http.MethodPost)
	a.HandleFunc("/auth/refresh/", s.handleRefresh).Methods(http.MethodPost)
	a.HandleFunc("/auth/me/", s.authed(s.handleMe)).Methods(http.MethodGet)

	a.HandleFunc("/bus-routes/", s.open(s.handleRoutes)).Methods(http.MethodGet)
	a.HandleFunc("/bus-routes/{id:[0-9]+}/", s.open(s.handleRoute)).Methods(http.MethodGet)
	a.HandleFunc("/bus-routes/{id:[0-9]+}/trips/", s.open(s.handleRouteTrips)).Methods(http.MethodGet)
	a.HandleFunc("/bus-schedules/", s.open(s.handleSchedules)).Methods(http.MethodGet)
	a.HandleFunc("/find_route/", s.open(s.handleFindRoute)).Methods(http.MethodGet)

	a.HandleFunc("/stops/search/", s.open(s.handleSearchStops)).Methods(http.MethodGet)
	a.HandleFunc("/stops/nearby/", s.open(s.handleNearbyStops)).Methods(http.MethodGet)
	a.HandleFunc("/stops/coordinates/", s.open(s.handleStopCoordinates)).Methods(http.MethodGet)

	a.HandleFunc("/fares/estimate/", s.open(s.handleFareEstimate)).Methods(http.MethodGet)
	a.HandleFunc("/passes/options/", s.open(s.handlePassOptions)).Methods(http.MethodGet)
	a.HandleFunc("/passes/quote/", s.open(s.handlePassQuote)).Methods(http.MethodPost)

	a.HandleFunc("/favourites/", s.authed(s.handleFavourites)).Methods(http.MethodGet)
	a.HandleFunc("/favourites/", s.authed(s.handleAddFavourite)).Methods(http.MethodPost)
	a.HandleFunc("/favourites/user/", s.authed(s.handleUserFavourites)).Methods(http.MethodGet)
	a.HandleFunc("/favourites/{id:[0-9]+}/", s.authed(s.handleDeleteFavourite)).Methods(http.MethodDelete)

	a.HandleFunc("/feedback/", s.authed(s.handleFeedback)).Methods(http.MethodGet)
	a.HandleFunc("/feedback/", s.authed(s.handleSubmitFeedback)).Methods(http.MethodPost)
	a.HandleFunc("/feedback/recent/", s.authed(s.handleRecentFeedback)).Methods(http.MethodGet)
	a.HandleFunc("/feedback/stats/", s.authed(s.handleFeedbackStats)).Methods(http.MethodGet)
	a.HandleFunc("/feedback/user/", s.authed(s.handleUserFeedback)).Methods(http.MethodGet)
	return r
}

// RevokeAccessTokens invalidates every access token issued so far.
func (s *Server) RevokeAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// FailRefresh makes the refresh endpoint reject (fail=true) or accept tokens.
func (s *Server) FailRefresh(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRefr = fail
}

// RotateRefresh makes each refresh issue a new refresh token and retire the old one.
func (s *Server) RotateRefresh(rotate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotate = rotate
}

// Hits returns how many requests reached path, e.g. "/auth/refresh/".
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// ResetHits zeroes every counter.
func (s *Server) ResetHits() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits = make(map[string]int)
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[strings.TrimPrefix(r.URL.Path, "/api")]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type accessClaims struct {
	Generation int `json:"gen"`
	jwt.RegisteredClaims
}

type ctxHandler func(w http.ResponseWriter, r *http.Request, user domain.Username)

// authed requires a valid bearer token.
func (s *Server) authed(h ctxHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, present, err := s.bearer(r)
		if !present {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		if err != nil {
			writeTokenInvalid(w)
			return
		}
		h(w, r, user)
	}
}

// open allows anonymous requests but rejects a bad bearer token.
func (s *Server) open(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, present, err := s.bearer(r); present && err != nil {
			writeTokenInvalid(w)
			return
		}
		h(w, r)
	}
}

func (s *Server) bearer(r *http.Request) (domain.Username, bool, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false, nil
	}
	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return "", true, jwt.ErrTokenMalformed
	}
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", true, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if claims.Generation != s.generation {
		return "", true, jwt.ErrTokenExpired
	}
	if _, ok := s.accounts[domain.Username(claims.Subject)]; !ok {
		return "", true, jwt.ErrTokenInvalidSubject
	}
	return domain.Username(claims.Subject), true, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeTokenInvalid(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"detail": "Given token not valid for any token type",
		"code":   "token_not_valid",
	})
}

func writeErrorField(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
