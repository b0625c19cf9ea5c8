package decisionlog

import (
	"context"
	"errors"
	"time"

	"github.com/rowguard/rowguard/id"
)

// ErrNotFound is the sentinel wrapped by stores when an entry is missing.
var ErrNotFound = errors.New("decisionlog: entry not found")

// Store defines persistence operations for decision audit logs.
type Store interface {
	// CreateDecision persists a new decision log entry.
	CreateDecision(ctx context.Context, e *Entry) error

	// GetDecision retrieves a decision log entry by ID.
	GetDecision(ctx context.Context, decisionID id.DecisionID) (*Entry, error)

	// ListDecisions returns decision log entries matching the filter,
	// newest first.
	ListDecisions(ctx context.Context, filter *QueryFilter) ([]*Entry, error)

	// CountDecisions returns the number of entries matching the filter.
	CountDecisions(ctx context.Context, filter *QueryFilter) (int64, error)

	// PurgeDecisions removes entries older than the given time and returns
	// how many were removed.
	PurgeDecisions(ctx context.Context, before time.Time) (int64, error)
}
