// Package storage defines the Storage interface — the contract any
// registrations backend must satisfy.
//
// Services depend only on this interface, so switching between SQLite,
// Postgres, and the in-memory store is a config change in main.go, and
// tests can pass a fake without a real database.
package storage

import (
	"context"

	"github.com/bootcamp-landing/registrations-api/internal/types"
)

// Storage is the persistence contract for registrations.
// There is deliberately no update method: a registration is created or
// deleted, never mutated.
type Storage interface {
	// CreateRegistration inserts a new row and returns the store-assigned
	// ID. IDs grow strictly and are never reused after a delete.
	CreateRegistration(ctx context.Context, in types.RegistrationInput) (int64, error)

	// GetRegistrations returns every registration in ascending ID order.
	// Returns an empty slice (not nil) when there are none.
	GetRegistrations(ctx context.Context) ([]types.Registration, error)

	// CountRegistrations returns the number of stored registrations.
	CountRegistrations(ctx context.Context) (int64, error)

	// DeleteRegistrationByID removes a row. Deleting a missing ID is a no-op.
	DeleteRegistrationByID(ctx context.Context, id int64) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
