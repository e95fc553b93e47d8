// Package session holds the client's authentication state: the bearer
// token, the user id and the loaded user profile.
//
// A Store is created once per process and handed to every component that
// needs it. Only its methods mutate the session. Token and user id are
// always set and cleared together, both in memory and in the Persister.
// Clear is idempotent; Expire is the compare-and-clear used on a 401 so a
// burst of rejected requests tears the session down exactly once.
//
// The profile is kept in a Loaded value: fetched at most once per session,
// refreshed only on request, and discarded if the session ends while the
// fetch is in flight.
package session
