// Package session logs users in and out of the transit API and reports the
// state of the locally stored credentials.
//
// Login stores both tokens returned by the server. Logout and an expired
// session (see the api package) clear them. Status never prints raw tokens:
// it shows short SHA-256 fingerprints and the access token's expiry, read
// from its JWT claims without verifying the signature. Opaque tokens report
// no expiry.
package session
