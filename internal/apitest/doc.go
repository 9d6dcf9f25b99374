// Package apitest is an in-memory fake of the transit API.
//
// It serves every endpoint the api package calls under an /api prefix using
// a gorilla/mux router. Accounts are kept with bcrypt password hashes,
// access tokens are HS256 JWTs and refresh tokens are random UUIDs. All
// catalog data (stops, routes, trips, schedules, passes and journey options)
// is canned Ahmedabad fixture data: the server looks entries up, it does not
// plan journeys or compute schedules.
//
// Test knobs:
//   - RevokeAccessTokens invalidates every access token issued so far.
//   - FailRefresh makes the refresh endpoint reject every token.
//   - RotateRefresh makes refresh issue a new refresh token each time.
//   - Hits counts requests per path, refreshes included.
//
// A request carrying an invalid bearer token is rejected with 401 even on
// endpoints that allow anonymous access, which is how the real backend's
// JWT authentication behaves.
package apitest
