package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yatra/internal/crypto"
	"yatra/internal/domain"
	"yatra/internal/logging"
)

// ErrNoAccessToken is returned when a login response carries no access token.
var ErrNoAccessToken = errors.New("login response carried no access token")

// Service ties the auth endpoints to the credential store.
type Service struct {
	auth    domain.AuthAPI
	creds   domain.CredentialStore
	profile string
	log     *logging.Logger
	now     func() time.Time
}

// New constructs a session Service. profile names the credential set,
// normally the API base URL.
func New(auth domain.AuthAPI, creds domain.CredentialStore, profile string, log *logging.Logger) *Service {
	return &Service{auth: auth, creds: creds, profile: profile, log: log, now: time.Now}
}

// Register creates an account. The caller is not logged in afterwards.
func (s *Service) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	u, err := s.auth.Register(ctx, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("register %s: %w", in.Username, err)
	}
	s.log.Infof("registered %s", in.Username)
	return u, nil
}

// Login authenticates and stores the returned token pair, replacing any
// previous session.
func (s *Service) Login(ctx context.Context, username domain.Username, password string) error {
	pair, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login %s: %w", username, err)
	}
	if pair.Access == "" {
		return ErrNoAccessToken
	}
	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("clear previous session: %w", err)
	}
	if err := s.creds.Set(domain.SlotAccess, pair.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := s.creds.Set(domain.SlotRefresh, pair.Refresh); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	s.log.Infof("logged in as %s (access %s)", username, crypto.Fingerprint(pair.Access))
	return nil
}

// Logout forgets the stored credentials. It does not contact the server.
func (s *Service) Logout() error {
	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// WhoAmI returns the signed-in user.
func (s *Service) WhoAmI(ctx context.Context) (domain.User, error) {
	return s.auth.Me(ctx)
}

// Status inspects the stored credentials without contacting the server.
func (s *Service) Status() (domain.SessionStatus, error) {
	st := domain.SessionStatus{Profile: s.profile}

	access, ok, err := s.creds.Get(domain.SlotAccess)
	if err != nil {
		return st, fmt.Errorf("read access token: %w", err)
	}
	if ok {
		st.HasAccess = true
		st.AccessFingerprint = crypto.Fingerprint(access)
		if exp, ok := expiry(access); ok {
			st.AccessExpiresAt = &exp
			st.AccessExpired = !s.now().Before(exp)
		}
	}

	refresh, ok, err := s.creds.Get(domain.SlotRefresh)
	if err != nil {
		return st, fmt.Errorf("read refresh token: %w", err)
	}
	if ok {
		st.HasRefresh = true
		st.RefreshFingerprint = crypto.Fingerprint(refresh)
	}
	return st, nil
}

// expiry returns the exp claim of a JWT. The signature is not checked; the
// server is the authority on validity.
func expiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
