package plugin

import (
	"context"
	"log/slog"

	"github.com/rowguard/rowguard/decisionlog"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeCheckEntry struct {
	name string
	hook BeforeCheck
}
type afterCheckEntry struct {
	name string
	hook AfterCheck
}
type decisionRecordedEntry struct {
	name string
	hook DecisionRecorded
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeCheck      []beforeCheckEntry
	afterCheck       []afterCheckEntry
	decisionRecorded []decisionRecordedEntry
	shutdown         []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeCheck); ok {
		r.beforeCheck = append(r.beforeCheck, beforeCheckEntry{name, h})
	}
	if h, ok := p.(AfterCheck); ok {
		r.afterCheck = append(r.afterCheck, afterCheckEntry{name, h})
	}
	if h, ok := p.(DecisionRecorded); ok {
		r.decisionRecorded = append(r.decisionRecorded, decisionRecordedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// EmitBeforeCheck notifies all plugins that implement BeforeCheck.
func (r *Registry) EmitBeforeCheck(ctx context.Context, req any) {
	for _, e := range r.beforeCheck {
		if err := e.hook.OnBeforeCheck(ctx, req); err != nil {
			r.logHookError("OnBeforeCheck", e.name, err)
		}
	}
}

// EmitAfterCheck notifies all plugins that implement AfterCheck.
func (r *Registry) EmitAfterCheck(ctx context.Context, req, result any) {
	for _, e := range r.afterCheck {
		if err := e.hook.OnAfterCheck(ctx, req, result); err != nil {
			r.logHookError("OnAfterCheck", e.name, err)
		}
	}
}

// EmitDecisionRecorded notifies all plugins that implement DecisionRecorded.
func (r *Registry) EmitDecisionRecorded(ctx context.Context, entry *decisionlog.Entry) {
	for _, e := range r.decisionRecorded {
		if err := e.hook.OnDecisionRecorded(ctx, entry); err != nil {
			r.logHookError("OnDecisionRecorded", e.name, err)
		}
	}
}

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the pipeline.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
