package apitest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yatra/internal/domain"
)

// AddUser creates an account directly, bypassing the register endpoint.
func (s *Server) AddUser(username domain.Username, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[username]; ok {
		return domain.User{}, fmt.Errorf("user %q already exists", username)
	}
	u := domain.User{ID: s.nextUserID, Username: username, Email: email}
	s.nextUserID++
	s.accounts[username] = &account{user: u, hash: hash}
	return u, nil
}

// IssueTokens returns a fresh token pair for an existing user.
func (s *Server) IssueTokens(username domain.Username) (domain.TokenPair, error) {
	access, err := s.signAccess(username)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh := uuid.NewString()
	s.mu.Lock()
	s.refresh[refresh] = username
	s.mu.Unlock()
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Server) signAccess(username domain.Username) (string, error) {
	now := s.now()
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	claims := accessClaims{
		Generation: gen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(username),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	in.Username = domain.Username(strings.TrimSpace(string(in.Username)))
	missing := map[string][]string{}
	if in.Username == "" {
		missing["username"] = []string{"This field is required."}
	}
	if in.Email == "" {
		missing["email"] = []string{"This field is required."}
	}
	if in.Password == "" {
		missing["password"] = []string{"This field is required."}
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, missing)
		return
	}
	u, err := s.AddUser(in.Username, in.Email, in.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"username": {"A user with that username already exists."},
		})
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[in.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(in.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}
	pair, err := s.IssueTokens(in.Username)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &in); err != nil || in.Refresh == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"refresh": {"This field is required."}})
		return
	}
	s.mu.Lock()
	user, ok := s.refresh[in.Refresh]
	fail, rotate := s.failRefr, s.rotate
	s.mu.Unlock()
	if !ok || fail {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
		return
	}
	access, err := s.signAccess(user)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := domain.TokenPair{Access: access}
	if rotate {
		out.Refresh = uuid.NewString()
		s.mu.Lock()
		delete(s.refresh, in.Refresh)
		s.refresh[out.Refresh] = user
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, user domain.Username) {
	s.mu.Lock()
	acct := s.accounts[user]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{
		"username": string(acct.user.Username),
		"email":    acct.user.Email,
	})
}
