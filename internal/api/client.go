package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"yatra/internal/domain"
	"yatra/internal/logging"
)

const (
	// DefaultBaseURL is the development server's API root.
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 15 * time.Second

	maxResponseBody = 8 << 20
)

// Client talks JSON to the transit API on behalf of the credentials in its
// store.
type Client struct {
	base      string
	http      *http.Client
	creds     domain.CredentialStore
	log       *logging.Logger
	userAgent string
	requestID func() string

	onLoginRequired func(error)

	// refreshMu serializes token refreshes across concurrent calls.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the client's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLoginRequired registers fn to run after credentials were cleared
// because a 401 could not be recovered from.
func WithLoginRequired(fn func(cause error)) Option {
	return func(c *Client) { c.onLoginRequired = fn }
}

// New returns a Client rooted at baseURL (e.g. http://127.0.0.1:8000/api).
func New(baseURL string, creds domain.CredentialStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if creds == nil {
		return nil, errors.New("api: nil credential store")
	}
	c := &Client{
		base:      strings.TrimRight(u.String(), "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		creds:     creds,
		log:       logging.Discard(),
		userAgent: "yatra",
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string { return c.base }

// Request describes one API call. Path is relative to the base URL and
// keeps the server's trailing slash, e.g. "/bus-routes/12/".
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// exchange is the per-call context threaded through the pipeline.
type exchange struct {
	req   Request
	url   string
	body  []byte
	state AuthState
	// sentToken is the access token the last attempt carried.
	sentToken string
	attempts  int
}

// Do sends req and decodes a 2xx JSON body into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	ex, err := c.newExchange(req)
	if err != nil {
		return err
	}

	resp, err := c.roundTrip(ctx, ex, c.tokenFor(ex.req.Path))
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized && ex.state.canRecover() && !IsPublic(ex.req.Path) {
		if resp, err = c.recoverUnauthorized(ctx, ex, resp); err != nil {
			return err
		}
	}
	if resp.StatusCode/100 != 2 {
		return newError(ex.req.Method, ex.req.Path, resp)
	}
	return decodeBody(ex.req, resp, out)
}

func (c *Client) newExchange(req Request) (*exchange, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if !strings.HasPrefix(req.Path, "/") {
		req.Path = "/" + req.Path
	}
	ex := &exchange{req: req, state: StateNormal, url: c.base + req.Path}
	if len(req.Query) > 0 {
		ex.url += "?" + req.Query.Encode()
	}
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		ex.body = b
	}
	return ex, nil
}

// tokenFor returns the access token to attach to path, or "" for public
// routes and when none is stored.
func (c *Client) tokenFor(path string) string {
	if IsPublic(path) {
		return ""
	}
	access, ok, err := c.creds.Get(domain.SlotAccess)
	if err != nil {
		c.log.Warnf("read access token: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return access
}

// roundTrip performs one HTTP attempt carrying token (if non-empty).
func (c *Client) roundTrip(ctx context.Context, ex *exchange, token string) (*response, error) {
	var body io.Reader
	if ex.body != nil {
		body = bytes.NewReader(ex.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, ex.req.Method, ex.url, body)
	if err != nil {
		return nil, err
	}
	reqID := c.requestID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" && !IsPublic(ex.req.Path) {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	ex.sentToken = token
	ex.attempts++

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ex.req.Method, ex.req.Path, err)
	}
	defer httpResp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", ex.req.Method, ex.req.Path, err)
	}
	c.log.Debugf("api %s %s -> %d in %s (attempt %d, state %s, request %s)",
		ex.req.Method, ex.req.Path, httpResp.StatusCode, time.Since(start).Round(time.Millisecond),
		ex.attempts, ex.state, reqID)

	return &response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       b,
	}, nil
}

// recoverUnauthorized runs the single refresh-and-retry for ex. The returned
// response is final for the call.
func (c *Client) recoverUnauthorized(ctx context.Context, ex *exchange, unauthorized *response) (*response, error) {
	ex.state = StateRefreshing
	access, err := c.refreshAccess(ctx, ex.sentToken)
	if err != nil {
		ex.state = StateFailed
		// The session may be fine; the local store is not. Keep what is on disk.
		var storeErr *credentialError
		if errors.As(err, &storeErr) {
			c.log.Errorf("%s %s: %v", ex.req.Method, ex.req.Path, storeErr.err)
			return nil, storeErr.err
		}
		return nil, c.expireSession(ex, newError(ex.req.Method, ex.req.Path, unauthorized), err)
	}
	ex.state = StateRetried
	return c.roundTrip(ctx, ex, access)
}

// refreshAccess returns a usable access token. If another call already
// rotated the token that sent was compared against, the rotated token is
// reused; otherwise the refresh endpoint is called.
func (c *Client) refreshAccess(ctx context.Context, sent string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current, ok, err := c.creds.Get(domain.SlotAccess)
	if err != nil {
		return "", &credentialError{fmt.Errorf("read access token: %w", err)}
	}
	if ok && current != sent {
		c.log.Debugf("access token already refreshed by a concurrent call")
		return current, nil
	}

	refresh, ok, err := c.creds.Get(domain.SlotRefresh)
	if err != nil {
		return "", &credentialError{fmt.Errorf("read refresh token: %w", err)}
	}
	if !ok {
		return "", ErrNoRefreshToken
	}

	pair, err := c.Refresh(ctx, refresh)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if pair.Access == "" {
		return "", errors.New("refresh access token: response carried no access token")
	}
	if err := c.creds.Set(domain.SlotAccess, pair.Access); err != nil {
		return "", &credentialError{fmt.Errorf("store access token: %w", err)}
	}
	if pair.Refresh != "" {
		if err := c.creds.Set(domain.SlotRefresh, pair.Refresh); err != nil {
			return "", &credentialError{fmt.Errorf("store refresh token: %w", err)}
		}
	}
	c.log.Infof("access token refreshed")
	return pair.Access, nil
}

// expireSession clears credentials and notifies the login-required hook.
func (c *Client) expireSession(ex *exchange, unauthorized *Error, cause error) error {
	if err := c.creds.Clear(); err != nil {
		c.log.Errorf("clear credentials: %v", err)
	}
	authErr := &AuthError{Cause: cause, Response: unauthorized}
	c.log.Warnf("session expired on %s %s: %v", ex.req.Method, ex.req.Path, cause)
	if c.onLoginRequired != nil {
		c.onLoginRequired(authErr)
	}
	return authErr
}

func decodeBody(req Request, resp *response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

// Compile-time assertion that Client implements domain.TransitAPI.
var _ domain.TransitAPI = (*Client)(nil)
