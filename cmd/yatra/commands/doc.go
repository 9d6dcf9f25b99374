// Package commands defines the yatra CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register     Create an account
//   - login        Log in and store the session tokens
//   - logout       Forget the stored session
//   - whoami       Show the signed-in user
//   - status       Show stored credentials (fingerprints and expiry only)
//   - routes       List routes, optionally filtered
//   - route        Show one route, its stops, trips and map viewport
//   - schedules    List schedules, optionally filtered
//   - find         Search journeys between two stops
//   - stops        Search stops by name or by location
//   - fare         Estimate a fare and recommend a pass
//   - favourites   Manage saved journeys
//   - feedback     Submit and read feedback
//   - dashboard    Your profile, favourites and feedback
//
// # Implementation
//
// The root command loads the layered configuration and builds the dependency
// graph (credential store, API client, services) before any subcommand runs.
// When a session cannot be refreshed the client clears it and the CLI prints
// a hint to log in again.
//
// Every command accepts --json to print the typed result as indented JSON.
package commands
