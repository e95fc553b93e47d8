package metadata

import (
	"context"
)

// Repository is a string-valued key/value store.
type Repository interface {
	// Lookup returns the values stored under keys. Missing keys are absent
	// from the result.
	Lookup(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
