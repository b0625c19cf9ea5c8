// Package extension mounts rowguard into a Forge application: the engine
// goes into the DI container, the PDP routes onto the router, and the
// decision log store is migrated and health-checked with the app lifecycle.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/rowguard/rowguard"
	"github.com/rowguard/rowguard/api"
	"github.com/rowguard/rowguard/plugin"
	"github.com/rowguard/rowguard/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "rowguard"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Row-level access control decision engine with ordered ACLs"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts rowguard as a Forge extension.
type Extension struct {
	config       Config
	eng          *rowguard.Engine
	apiHandler   *api.API
	logger       *slog.Logger
	rowguardOpts []rowguard.Option
	plugins      []plugin.Plugin
}

// New creates a rowguard Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Engine returns the underlying rowguard engine.
func (e *Extension) Engine() *rowguard.Engine { return e.eng }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It builds the engine, places it in
// the DI container, and mounts the PDP routes unless disabled.
func (e *Extension) Register(fapp forge.App) error {
	eng, err := rowguard.NewEngine(e.engineOptions(fapp)...)
	if err != nil {
		return fmt.Errorf("rowguard: create engine: %w", err)
	}
	e.eng = eng

	if err := vessel.Provide(fapp.Container(), func() (*rowguard.Engine, error) {
		return e.eng, nil
	}); err != nil {
		return fmt.Errorf("rowguard: register engine in container: %w", err)
	}

	router := fapp.Router()
	if e.config.BasePath != "" {
		router = router.Group(e.config.BasePath)
	}
	e.apiHandler = api.New(eng, router)

	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(router); err != nil {
			return fmt.Errorf("rowguard: register routes: %w", err)
		}
	}
	return nil
}

// engineOptions assembles the engine options in override order: extension
// config first, a container-resolved store next, then caller options so
// explicit choices always win, and finally the lifecycle plugins.
func (e *Extension) engineOptions(fapp forge.App) []rowguard.Option {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]rowguard.Option, 0, len(e.rowguardOpts)+len(e.plugins)+3)
	opts = append(opts, rowguard.WithLogger(logger))

	if e.config.RecordDecisions != nil {
		opts = append(opts, rowguard.WithConfig(rowguard.Config{
			RecordDecisions: e.config.RecordDecisions,
		}))
	}
	if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
		opts = append(opts, rowguard.WithStore(s))
	}

	opts = append(opts, e.rowguardOpts...)
	for _, x := range e.plugins {
		opts = append(opts, rowguard.WithPlugin(x))
	}
	return opts
}

// Start runs store migrations unless disabled, then starts the engine.
func (e *Extension) Start(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("rowguard: extension not initialized")
	}
	if s := e.eng.Store(); s != nil && !e.config.DisableMigrate {
		if err := s.Migrate(ctx); err != nil {
			return fmt.Errorf("rowguard: migration failed: %w", err)
		}
	}
	return e.eng.Start(ctx)
}

// Stop gracefully shuts down the rowguard engine.
func (e *Extension) Stop(ctx context.Context) error {
	if e.eng == nil {
		return nil
	}
	return e.eng.Stop(ctx)
}

// Health implements [forge.Extension]. A storeless engine is healthy; it
// evaluates checks without recording them.
func (e *Extension) Health(ctx context.Context) error {
	if e.eng == nil {
		return errors.New("rowguard: extension not initialized")
	}
	if s := e.eng.Store(); s != nil {
		return s.Ping(ctx)
	}
	return nil
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all rowguard API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
