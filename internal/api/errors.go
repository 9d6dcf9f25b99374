package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrLoginRequired reports that stored credentials are gone and the user
	// must log in again.
	ErrLoginRequired = errors.New("login required")
	// ErrNoRefreshToken reports a 401 with no refresh token to recover with.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrInvalidInput wraps client-side validation failures. No request is sent.
	ErrInvalidInput = errors.New("invalid input")
)

const maxErrorBody = 512

// Error is a non-2xx response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	// Detail is the server's "detail" or "error" message, when present.
	Detail string
	// Body is the start of the raw response body.
	Body string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("api %s %s: %s", e.Method, e.Path, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unauthorized reports whether the response was a 401.
func (e *Error) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// NotFound reports whether the response was a 404.
func (e *Error) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// credentialError marks a failure of the credential store itself, as opposed
// to the server rejecting the session.
type credentialError struct{ err error }

func (e *credentialError) Error() string { return e.err.Error() }
func (e *credentialError) Unwrap() error { return e.err }

func newError(method, path string, resp *response) *Error {
	e := &Error{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	if e.Status == "" {
		e.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body := resp.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	e.Body = strings.TrimSpace(string(body))

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(resp.Body, &payload) == nil {
		e.Detail = payload.Detail
		if e.Detail == "" {
			e.Detail = payload.Error
		}
	}
	return e
}

// AuthError is returned when a 401 could not be recovered from. It matches
// ErrLoginRequired, the original 401 *Error, and its Cause. errors.As finds
// the original response before any *Error inside Cause.
type AuthError struct {
	Cause    error
	Response *Error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", ErrLoginRequired, e.Cause)
}

func (e *AuthError) Unwrap() []error {
	errs := []error{ErrLoginRequired}
	if e.Response != nil {
		errs = append(errs, e.Response)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
