package rowguard

import "context"

type contextKey int

const ctxKeyPrincipals contextKey = iota

// WithPrincipals returns a context carrying the caller's principal set.
// Boundary layers resolve the caller once per request and stash the set
// here; handlers then build check requests without re-normalizing.
func WithPrincipals(ctx context.Context, principals PrincipalSet) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipals, principals)
}

// PrincipalsFromContext extracts the principal set stored by WithPrincipals.
// If none is present the anonymous set {Everyone} is returned, so a missing
// boundary layer degrades to anonymous access, never to elevated access.
func PrincipalsFromContext(ctx context.Context) PrincipalSet {
	if s, ok := ctx.Value(ctxKeyPrincipals).(PrincipalSet); ok && len(s) > 0 {
		return s
	}
	return NewPrincipalSet(Everyone)
}
