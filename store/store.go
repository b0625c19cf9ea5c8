// Package store defines the aggregate persistence interface for rowguard.
// The engine itself persists nothing about resources or ACLs; the only
// stored entity is the decision audit log. Backends: Postgres, SQLite,
// MongoDB, and Memory.
package store

import (
	"context"

	"github.com/rowguard/rowguard/decisionlog"
)

// Store is the aggregate persistence interface. A single backend
// (postgres, sqlite, mongo, memory) implements all of it.
type Store interface {
	decisionlog.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
