// Package crypto holds the few primitives yatra needs outside the credential
// envelope.
//
// Contents
//
//   - Short SHA-256 fingerprints of tokens for display and logging (Fingerprint)
//   - Best-effort memory wiping for derived keys and passphrases (Wipe)
package crypto
