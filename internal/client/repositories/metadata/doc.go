// Package metadata is the client's key/value store in the local SQLite
// database. The session layer keeps its persisted credentials here, under
// the keys "token" and "user_id".
//
// Repository is the plain key/value contract; SQLiteRepository implements it
// over a dbx.DBTX so it can run inside or outside a transaction.
// TokenPersister adapts the table to session.Persister and writes or erases
// both credential keys in a single transaction.
package metadata
