// Package client talks to the bizdesk backend.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) used by the services
//     layer: Do for authenticated calls and DoAnonymous for login and
//     registration.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that injects the bearer
//     token in one place, tears the session down on 401, rate limits
//     outgoing calls and records request metrics.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnauthenticated, ErrAuthExpired, ErrRemote, ErrUnavailable. Non-2xx
// responses come back as *RemoteError carrying the status code and the
// server's message.
//
// HTTPClient is safe for concurrent use. All calls honor context
// cancellation.
package client
