package prefs

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no preferences have been stored for a user.
// Callers resolve it to the all-defaults preference set.
var ErrNotFound = errors.New("no preferences stored for user")

// Repository is the contract any preference store (PostgreSQL in production,
// in-memory for development and tests) must satisfy.
type Repository interface {
	// Get returns the stored record for a user, or ErrNotFound.
	Get(ctx context.Context, userID string) (Record, error)

	// Upsert inserts or fully replaces a user's preference record.
	Upsert(ctx context.Context, rec Record) error

	// Locations returns the distinct locations across all stored records,
	// used to warm the forecast cache.
	Locations(ctx context.Context) ([]string, error)
}
