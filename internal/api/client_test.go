package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"yatra/internal/api"
	"yatra/internal/domain"
	"yatra/internal/store"
)

// fakeAuthServer accepts a fixed set of access tokens and hands out
// refreshed ones. It records the Authorization header of every request.
type fakeAuthServer struct {
	mu sync.Mutex

	valid       map[string]bool
	refreshOK   bool
	refreshed   string // access token issued by refresh
	rotated     string // refresh token issued by refresh, if any
	acceptFresh bool   // whether refreshed tokens are accepted

	calls map[string]int
	auth  map[string][]string
}

func newFakeAuthServer(valid ...string) *fakeAuthServer {
	f := &fakeAuthServer{
		valid:       map[string]bool{},
		refreshOK:   true,
		refreshed:   "a2",
		acceptFresh: true,
		calls:       map[string]int{},
		auth:        map[string][]string{},
	}
	for _, v := range valid {
		f.valid[v] = true
	}
	return f
}

func (f *fakeAuthServer) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeAuthServer) headers(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth[path]...)
}

func (f *fakeAuthServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")

	f.mu.Lock()
	f.calls[path]++
	f.auth[path] = append(f.auth[path], r.Header.Get("Authorization"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch path {
	case "/register/":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"username":"alice","email":"alice@example.com"}`))
	case "/auth/login/":
		var in struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access":"a1","refresh":"r1"}`))
	case "/auth/refresh/":
		var in struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		ok := f.refreshOK && in.Refresh == "r1"
		access, rotated := f.refreshed, f.rotated
		if ok && f.acceptFresh {
			f.valid[access] = true
		}
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired","code":"token_not_valid"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(domain.TokenPair{Access: access, Refresh: rotated})
	case "/auth/me/":
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		ok := f.valid[token]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		_, _ = w.Write([]byte(`{"username":"alice","email":"alice@example.com"}`))
	case "/bus-routes/":
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeAuthServer, creds domain.CredentialStore, opts ...api.Option) *api.Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := api.New(srv.URL+"/api", creds, opts...)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return c
}

func seed(t *testing.T, s domain.CredentialStore, access, refresh string) {
	t.Helper()
	if access != "" {
		if err := s.Set(domain.SlotAccess, access); err != nil {
			t.Fatalf("Set access: %v", err)
		}
	}
	if refresh != "" {
		if err := s.Set(domain.SlotRefresh, refresh); err != nil {
			t.Fatalf("Set refresh: %v", err)
		}
	}
}

func slot(t *testing.T, s domain.CredentialStore, name domain.CredentialSlot) string {
	t.Helper()
	v, _, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get %s: %v", name, err)
	}
	return v
}

func TestPublicRoutesNeverCarryBearer(t *testing.T) {
	f := newFakeAuthServer()
	creds := store.NewMemoryStore()
	seed(t, creds, "a0", "r1")
	c := newTestClient(t, f, creds)
	ctx := context.Background()

	if _, err := c.Register(ctx, domain.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := c.Login(ctx, "alice", "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.Refresh(ctx, "r1"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	for _, p := range []string{"/register/", "/auth/login/", "/auth/refresh/"} {
		h := f.headers(p)
		if len(h) != 1 {
			t.Fatalf("%s: got %d requests, want 1", p, len(h))
		}
		if h[0] != "" {
			t.Fatalf("%s carried Authorization %q", p, h[0])
		}
	}
}

func TestProtectedRouteCarriesStoredToken(t *testing.T) {
	f := newFakeAuthServer("a1")
	creds := store.NewMemoryStore()
	seed(t, creds, "a1", "r1")
	c := newTestClient(t, f, creds)

	u, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username: got %q", u.Username)
	}
	if h := f.headers("/auth/me/"); len(h) != 1 || h[0] != "Bearer a1" {
		t.Fatalf("Authorization headers: %q", h)
	}
	if n := f.count("/auth/refresh/"); n != 0 {
		t.Fatalf("refresh calls: got %d, want 0", n)
	}
}

func TestUnauthorized_RefreshesOnceAndRetries(t *testing.T) {
	f := newFakeAuthServer()
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "r1")
	c := newTestClient(t, f, creds)

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if n := f.count("/auth/refresh/"); n != 1 {
		t.Fatalf("refresh calls: got %d, want 1", n)
	}
	h := f.headers("/auth/me/")
	if len(h) != 2 || h[0] != "Bearer stale" || h[1] != "Bearer a2" {
		t.Fatalf("Authorization headers: %q", h)
	}
	if got := slot(t, creds, domain.SlotAccess); got != "a2" {
		t.Fatalf("stored access: got %q, want a2", got)
	}
	if got := slot(t, creds, domain.SlotRefresh); got != "r1" {
		t.Fatalf("stored refresh: got %q, want r1", got)
	}
}

func TestUnauthorized_StoresRotatedRefreshToken(t *testing.T) {
	f := newFakeAuthServer()
	f.rotated = "r2"
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "r1")
	c := newTestClient(t, f, creds)

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if got := slot(t, creds, domain.SlotRefresh); got != "r2" {
		t.Fatalf("stored refresh: got %q, want r2", got)
	}
}

func TestRefreshFailure_ClearsCredentialsAndSignalsLogin(t *testing.T) {
	f := newFakeAuthServer()
	f.refreshOK = false
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "r1")

	var hooked []error
	c := newTestClient(t, f, creds, api.WithLoginRequired(func(err error) { hooked = append(hooked, err) }))

	_, err := c.Me(context.Background())
	if !errors.Is(err, api.ErrLoginRequired) {
		t.Fatalf("want ErrLoginRequired, got %v", err)
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || apiErr.Path != "/auth/me/" {
		t.Fatalf("want the original 401 in the chain, got %#v", apiErr)
	}
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want *api.AuthError, got %T", err)
	}
	if len(hooked) != 1 {
		t.Fatalf("login-required hook: got %d calls, want 1", len(hooked))
	}
	if _, ok, _ := creds.Get(domain.SlotAccess); ok {
		t.Fatal("access token survived a failed refresh")
	}
	if _, ok, _ := creds.Get(domain.SlotRefresh); ok {
		t.Fatal("refresh token survived a failed refresh")
	}
	if n := f.count("/auth/me/"); n != 1 {
		t.Fatalf("protected calls: got %d, want 1 (no retry after failed refresh)", n)
	}

	// The next protected call is a fresh unauthenticated request.
	_, err = c.Me(context.Background())
	if !errors.Is(err, api.ErrLoginRequired) || !errors.Is(err, api.ErrNoRefreshToken) {
		t.Fatalf("second call: got %v", err)
	}
	h := f.headers("/auth/me/")
	if len(h) != 2 || h[1] != "" {
		t.Fatalf("second call Authorization: %q", h)
	}
	if n := f.count("/auth/refresh/"); n != 1 {
		t.Fatalf("refresh calls: got %d, want 1", n)
	}
}

func TestUnauthorizedAfterRetry_IsFinal(t *testing.T) {
	f := newFakeAuthServer()
	f.acceptFresh = false
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "r1")
	c := newTestClient(t, f, creds)

	_, err := c.Me(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("want 401 *api.Error, got %v", err)
	}
	if errors.Is(err, api.ErrLoginRequired) {
		t.Fatal("a 401 after the retry must not be reported as login required")
	}
	if n := f.count("/auth/refresh/"); n != 1 {
		t.Fatalf("refresh calls: got %d, want 1", n)
	}
	if n := f.count("/auth/me/"); n != 2 {
		t.Fatalf("protected calls: got %d, want 2", n)
	}
}

func TestUnauthorized_NoRefreshToken(t *testing.T) {
	f := newFakeAuthServer()
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "")
	c := newTestClient(t, f, creds)

	_, err := c.Me(context.Background())
	if !errors.Is(err, api.ErrNoRefreshToken) || !errors.Is(err, api.ErrLoginRequired) {
		t.Fatalf("got %v", err)
	}
	if n := f.count("/auth/refresh/"); n != 0 {
		t.Fatalf("refresh calls: got %d, want 0", n)
	}
	if _, ok, _ := creds.Get(domain.SlotAccess); ok {
		t.Fatal("access token survived")
	}
}

func TestLoginUnauthorized_DoesNotRefresh(t *testing.T) {
	f := newFakeAuthServer()
	creds := store.NewMemoryStore()
	seed(t, creds, "a0", "r1")
	c := newTestClient(t, f, creds)

	_, err := c.Login(context.Background(), "alice", "wrong-password")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("want 401 *api.Error, got %v", err)
	}
	if !strings.Contains(apiErr.Detail, "No active account") {
		t.Fatalf("detail: %q", apiErr.Detail)
	}
	if n := f.count("/auth/refresh/"); n != 0 {
		t.Fatalf("refresh calls: got %d, want 0", n)
	}
	if got := slot(t, creds, domain.SlotRefresh); got != "r1" {
		t.Fatal("credentials changed by a failed login")
	}
}

func TestNonAuthErrors_PropagateUnchanged(t *testing.T) {
	f := newFakeAuthServer("a1")
	creds := store.NewMemoryStore()
	seed(t, creds, "a1", "r1")
	c := newTestClient(t, f, creds)

	_, err := c.Routes(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *api.Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Detail != "boom" {
		t.Fatalf("got %d %q", apiErr.StatusCode, apiErr.Detail)
	}
	if n := f.count("/bus-routes/"); n != 1 {
		t.Fatalf("calls: got %d, want 1", n)
	}
	if n := f.count("/auth/refresh/"); n != 0 {
		t.Fatalf("refresh calls: got %d, want 0", n)
	}
	_, err = c.Route(context.Background(), 99)
	if !errors.As(err, &apiErr) || !apiErr.NotFound() {
		t.Fatalf("want 404, got %v", err)
	}
}

func TestTransportError_NotRetried(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	creds := store.NewMemoryStore()
	seed(t, creds, "a1", "r1")
	c, err := api.New(base, creds)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	_, err = c.Me(context.Background())
	if err == nil {
		t.Fatal("want a transport error")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) || errors.Is(err, api.ErrLoginRequired) {
		t.Fatalf("transport error misreported: %v", err)
	}
	if got := slot(t, creds, domain.SlotAccess); got != "a1" {
		t.Fatal("credentials changed by a transport error")
	}
}

func TestConcurrentUnauthorized_SingleRefresh(t *testing.T) {
	f := newFakeAuthServer()
	creds := store.NewMemoryStore()
	seed(t, creds, "stale", "r1")
	c := newTestClient(t, f, creds)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Me(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Me: %v", err)
		}
	}
	if got := f.count("/auth/refresh/"); got != 1 {
		t.Fatalf("refresh calls: got %d, want 1", got)
	}
}

func TestInvalidInput_SendsNothing(t *testing.T) {
	f := newFakeAuthServer("a1")
	creds := store.NewMemoryStore()
	seed(t, creds, "a1", "r1")
	c := newTestClient(t, f, creds)
	ctx := context.Background()

	if _, err := c.SubmitFeedback(ctx, domain.FeedbackInput{Comment: "late again", Rating: 9}); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("rating 9: got %v", err)
	}
	if _, err := c.EstimateFare(ctx, domain.FareQuery{RouteID: 1, Transfers: 4}); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("transfers 4: got %v", err)
	}
	if _, err := c.FindRoute(ctx, domain.RouteQuery{Source: "Kalupur"}); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("missing destination: got %v", err)
	}
	if _, err := c.Login(ctx, "", "x"); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("empty username: got %v", err)
	}
	f.mu.Lock()
	total := len(f.calls)
	f.mu.Unlock()
	if total != 0 {
		t.Fatalf("requests sent: %v", f.calls)
	}
}

func TestNew_RejectsBadInput(t *testing.T) {
	if _, err := api.New("ftp://example.com", store.NewMemoryStore()); err == nil {
		t.Fatal("want scheme error")
	}
	if _, err := api.New(api.DefaultBaseURL, nil); err == nil {
		t.Fatal("want nil store error")
	}
	c, err := api.New("http://example.com/api/", store.NewMemoryStore())
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	if c.BaseURL() != "http://example.com/api" {
		t.Fatalf("BaseURL: %q", c.BaseURL())
	}
}

func TestIsPublic(t *testing.T) {
	cases := map[string]bool{
		"/register/":                  true,
		"/auth/login/":                true,
		"/auth/refresh/":              true,
		"/api/auth/login/":            true,
		"/auth/refresh/?x=1":          true,
		"/auth/me/":                   false,
		"/auth/login":                 false,
		"/favourites/":                false,
		"/register/extra":             false,
		"/stops/search/?q=/register/": false,
	}
	for path, want := range cases {
		if got := api.IsPublic(path); got != want {
			t.Errorf("IsPublic(%q) = %v, want %v", path, got, want)
		}
	}
}
