// Package api is the authenticated HTTP client for the transit REST API.
//
// Every request goes through Client.Do, which forms a small pipeline:
//
//   - Requests to public routes (registration, login, refresh) are sent
//     without credentials.
//   - Any other request carries "Authorization: Bearer <access>" when the
//     credential store holds an access token.
//   - A 401 on a protected route triggers one recovery: the stored refresh
//     token is exchanged for a new access token and the original request is
//     reissued exactly once. The outcome of that retry is final.
//   - When recovery is impossible (no refresh token, refresh rejected) the
//     store is cleared, the login-required hook runs, and the caller gets an
//     *AuthError matching ErrLoginRequired.
//   - Other non-2xx statuses come back unchanged as *Error.
//
// Each call tracks its progress through that pipeline as an AuthState held
// by a per-call exchange, never on shared state. The Client is safe for
// concurrent use; refreshes are serialized so that a burst of 401s costs a
// single refresh call.
//
// The typed endpoint methods (Routes, SearchStops, SubmitFeedback, ...) are
// thin wrappers over Do that validate their inputs first.
package api
