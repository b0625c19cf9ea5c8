// Package plugin defines the plugin system for rowguard.
// Plugins are notified of lifecycle events (check evaluated, decision
// recorded, shutdown) and can react — logging, metrics, tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"

	"github.com/rowguard/rowguard/decisionlog"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// BeforeCheck is called before an access check is evaluated.
// The req parameter is *rowguard.CheckRequest (passed as any to avoid import cycle).
type BeforeCheck interface {
	OnBeforeCheck(ctx context.Context, req any) error
}

// AfterCheck is called after an access check completes.
// The req parameter is *rowguard.CheckRequest; result is *rowguard.CheckResult.
type AfterCheck interface {
	OnAfterCheck(ctx context.Context, req, result any) error
}

// DecisionRecorded is called after a decision log entry is persisted.
type DecisionRecorded interface {
	OnDecisionRecorded(ctx context.Context, e *decisionlog.Entry) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
