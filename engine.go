package rowguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/plugin"
	"github.com/rowguard/rowguard/store"
)

// Engine is the central decision point. It normalizes the request, runs the
// first-match-wins evaluation, fires plugin hooks, and records an audit
// entry when a decision log store is configured.
//
// The engine holds no mutable state of its own; Check and Grants are safe
// for concurrent use.
type Engine struct {
	store     store.Store
	plugins   *plugin.Registry
	logger    *slog.Logger
	config    Config
	denialErr error
}

// NewEngine creates a new rowguard engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:    slog.Default(),
		config:    DefaultConfig(),
		denialErr: ErrAccessDenied,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		return nil, errors.New("rowguard: logger must not be nil")
	}
	if e.denialErr == nil {
		e.denialErr = ErrAccessDenied
	}
	return e, nil
}

// Store returns the configured decision log store (may be nil).
func (e *Engine) Store() store.Store { return e.store }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Start performs any startup initialization.
func (e *Engine) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown, notifying plugins.
func (e *Engine) Stop(ctx context.Context) error {
	if e.plugins != nil {
		e.plugins.EmitShutdown(ctx)
	}
	return nil
}

// Check performs an authorization check. This is the hot path.
//
// A nil or empty principal set is treated as anonymous ({Everyone}). A
// structurally invalid ACL fails the call with ErrMalformedACE; absence of
// an ACL is not an error, it is a default deny.
func (e *Engine) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	start := time.Now()
	if req == nil {
		return nil, ErrNilRequest
	}

	if e.plugins != nil {
		e.plugins.EmitBeforeCheck(ctx, req)
	}

	acl := NormalizeACL(req.Resource)
	if err := ValidateACL(acl); err != nil {
		return nil, err
	}

	principals := req.Principals
	if len(principals) == 0 {
		principals = NewPrincipalSet(Everyone)
	}

	result := evaluate(principals, req.Permission, acl)
	result.EvalTimeNs = time.Since(start).Nanoseconds()

	if e.store != nil && e.config.recordEnabled() {
		e.record(ctx, req, principals, result)
	}

	if e.plugins != nil {
		e.plugins.EmitAfterCheck(ctx, req, result)
	}

	return result, nil
}

// Enforce returns the configured denial error if the check is denied.
// Evaluation errors are returned as-is; translating the denial error into a
// protocol response stays with the caller.
func (e *Engine) Enforce(ctx context.Context, req *CheckRequest) error {
	result, err := e.Check(ctx, req)
	if err != nil {
		return fmt.Errorf("rowguard check: %w", err)
	}
	if !result.Allowed {
		return e.denialErr
	}
	return nil
}

// Can is a shorthand for a simple boolean authorization check.
func (e *Engine) Can(ctx context.Context, principals PrincipalSet, permission Permission, resource any) (bool, error) {
	result, err := e.Check(ctx, &CheckRequest{
		Principals: principals,
		Permission: permission,
		Resource:   resource,
	})
	if err != nil {
		return false, err
	}
	return result.Allowed, nil
}

// Grants enumerates every permission mentioned in the resource's ACL with
// its decision for the given principals. The container's default for absent
// permissions follows Config.DefaultGrant.
func (e *Engine) Grants(_ context.Context, principals PrincipalSet, resource any) (*Grants, error) {
	acl := NormalizeACL(resource)
	if err := ValidateACL(acl); err != nil {
		return nil, err
	}
	if len(principals) == 0 {
		principals = NewPrincipalSet(Everyone)
	}
	g := ListPermissions(principals, acl)
	if e.config.DefaultGrant {
		g = g.WithDefault(true)
	}
	return g, nil
}

// evaluate applies the first-match-wins rule and annotates the result with
// the entry that determined it.
func evaluate(principals PrincipalSet, requested Permission, acl ACL) *CheckResult {
	for i, ace := range acl {
		if !ace.Permissions.Contains(requested) {
			continue
		}
		if !principals.Has(ace.Principal) {
			continue
		}
		matched := &MatchInfo{
			Index:     i,
			Principal: ace.Principal,
			Detail:    fmt.Sprintf("entry %d: %s %q for %q", i, ace.Effect, requested, ace.Principal),
		}
		if ace.Effect == EffectAllow {
			return &CheckResult{Allowed: true, Decision: DecisionAllow, Matched: matched}
		}
		return &CheckResult{
			Decision: DecisionDenyExplicit,
			Reason:   fmt.Sprintf("denied by entry %d for %q", i, ace.Principal),
			Matched:  matched,
		}
	}
	return &CheckResult{Decision: DecisionDenyDefault, Reason: "no matching allow entry"}
}

// record writes a best-effort audit entry. A failing store never fails the
// check; the error is logged and evaluation proceeds.
func (e *Engine) record(ctx context.Context, req *CheckRequest, principals PrincipalSet, result *CheckResult) {
	entry := &decisionlog.Entry{
		ID:         id.NewDecisionID(),
		Principals: principals.Strings(),
		Permission: string(req.Permission),
		Resource:   req.ResourceName,
		Decision:   string(result.Decision),
		Reason:     result.Reason,
		EvalTimeNs: result.EvalTimeNs,
		Metadata:   req.Metadata,
	}
	if result.Matched != nil {
		idx := result.Matched.Index
		entry.MatchedIndex = &idx
	}

	if err := e.store.CreateDecision(ctx, entry); err != nil {
		e.logger.Warn("rowguard: record decision failed", "error", err)
		return
	}
	if e.plugins != nil {
		e.plugins.EmitDecisionRecorded(ctx, entry)
	}
}
