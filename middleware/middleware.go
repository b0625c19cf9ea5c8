// Package middleware provides HTTP authorization middleware for rowguard.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/rowguard/rowguard"
)

// PrincipalResolver extracts the caller's principals from a request.
type PrincipalResolver func(ctx forge.Context) rowguard.PrincipalSet

// ResourceLoader supplies the ACL-bearing resource for a request,
// typically by loading it from the route's "id" parameter.
type ResourceLoader func(ctx forge.Context) (any, error)

// Option customizes guard behavior.
type Option func(*guard)

// WithResolver overrides the default principal resolver.
func WithResolver(r PrincipalResolver) Option {
	return func(g *guard) { g.resolve = r }
}

// WithDenialHandler overrides the default 403 JSON response.
func WithDenialHandler(h forge.Handler) Option {
	return func(g *guard) { g.deny = h }
}

type guard struct {
	resolve PrincipalResolver
	deny    forge.Handler
}

func newGuard(opts []Option) *guard {
	g := &guard{
		resolve: ResolvePrincipals,
		deny:    denyResponse,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Require enforces a single permission against the resource supplied by
// the loader. The caller's principals are resolved from the request
// context (explicit principal set > Forge user ID > anonymous).
func Require(eng *rowguard.Engine, permission rowguard.Permission, load ResourceLoader, opts ...Option) forge.Middleware {
	g := newGuard(opts)
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			resource, err := load(ctx)
			if err != nil {
				return g.deny(ctx)
			}
			allowed, err := eng.Can(ctx.Context(), g.resolve(ctx), permission, resource)
			if err != nil || !allowed {
				return g.deny(ctx)
			}
			return next(ctx)
		}
	}
}

// RequireAny allows the request if ANY of the permissions is granted.
func RequireAny(eng *rowguard.Engine, load ResourceLoader, permissions []rowguard.Permission, opts ...Option) forge.Middleware {
	g := newGuard(opts)
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			resource, err := load(ctx)
			if err != nil {
				return g.deny(ctx)
			}
			principals := g.resolve(ctx)
			for _, p := range permissions {
				allowed, err := eng.Can(ctx.Context(), principals, p, resource)
				if err == nil && allowed {
					return next(ctx)
				}
			}
			return g.deny(ctx)
		}
	}
}

// RequireAll allows the request only if ALL permissions are granted.
func RequireAll(eng *rowguard.Engine, load ResourceLoader, permissions []rowguard.Permission, opts ...Option) forge.Middleware {
	g := newGuard(opts)
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			resource, err := load(ctx)
			if err != nil {
				return g.deny(ctx)
			}
			principals := g.resolve(ctx)
			for _, p := range permissions {
				allowed, err := eng.Can(ctx.Context(), principals, p, resource)
				if err != nil || !allowed {
					return g.deny(ctx)
				}
			}
			return next(ctx)
		}
	}
}

// StaticResource adapts a fixed resource (e.g. a package-level ACL) into
// a ResourceLoader for routes that guard a single shared resource.
func StaticResource(resource any) ResourceLoader {
	return func(forge.Context) (any, error) { return resource, nil }
}

// ResolvePrincipals is the default principal resolver.
// Priority: principal set on the request context → Forge user ID
// (from Authsome) → anonymous. A stored set larger than the anonymous
// fallback always wins, so upstream auth layers can pre-resolve roles.
func ResolvePrincipals(ctx forge.Context) rowguard.PrincipalSet {
	if principals := rowguard.PrincipalsFromContext(ctx.Context()); len(principals) > 1 {
		return principals
	}
	if userID := forge.UserIDFromContext(ctx.Context()); userID != "" {
		return rowguard.NormalizePrincipals([]rowguard.Principal{rowguard.UserPrincipal(userID)})
	}
	return rowguard.NormalizePrincipals(nil)
}

func denyResponse(ctx forge.Context) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": "access denied"})
}
