// Package app loads configuration and wires application dependencies for
// the CLI.
//
// LoadConfig layers settings, later sources winning:
//
//  1. built-in defaults
//  2. <home>/config.yml
//  3. <home>/.env, then .env in the working directory
//  4. YATRA_API_URL, YATRA_TIMEOUT, YATRA_LOG_LEVEL, YATRA_PASSPHRASE
//  5. command-line flags (Overrides)
//
// NewWire builds the credential store, the API client and the high-level
// services from a Config and exposes them via the Wire struct.
package app
