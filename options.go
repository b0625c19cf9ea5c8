package rowguard

import (
	"log/slog"

	"github.com/rowguard/rowguard/plugin"
	"github.com/rowguard/rowguard/store"
)

// Option is a functional option for the Engine.
type Option func(*Engine)

// WithStore sets the decision log store. Without one, checks are evaluated
// but never recorded.
func WithStore(s store.Store) Option { return func(e *Engine) { e.store = s } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithConfig sets the engine configuration.
func WithConfig(c Config) Option { return func(e *Engine) { e.config = c } }

// WithDenialError sets the error Enforce returns on a denied check. The
// surrounding layer supplies whatever denial signal its protocol needs; the
// engine never translates a denial itself.
func WithDenialError(err error) Option { return func(e *Engine) { e.denialErr = err } }

// WithPlugin registers a lifecycle hook plugin.
func WithPlugin(x plugin.Plugin) Option {
	return func(e *Engine) {
		if e.plugins == nil {
			e.plugins = plugin.NewRegistry(e.logger)
		}
		e.plugins.Register(x)
	}
}
