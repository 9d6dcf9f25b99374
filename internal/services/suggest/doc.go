// Package suggest completes stop names while the user types.
//
// Every call to Suggest starts a new generation. Starting a generation
// cancels the lookup of the previous one, and a response that arrives after
// a newer generation began is discarded with ErrSuperseded, so a slow reply
// to an old prefix can never replace the answer to the latest one.
//
// Queries are trimmed; those shorter than the minimum length return no
// suggestions without contacting the server. Results are cached per
// lower-cased query.
package suggest
