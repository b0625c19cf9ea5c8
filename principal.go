package rowguard

import "sort"

// Principal is an opaque identity token a caller can carry. Concrete
// principals are namespaced strings such as "user:42" or "role:admin";
// equality is the only operation the engine performs on them.
type Principal string

const (
	// Everyone matches every caller, including anonymous ones.
	Everyone Principal = "system:everyone"

	// Authenticated matches every caller known to be logged in.
	Authenticated Principal = "system:authenticated"
)

// UserPrincipal returns the principal for a specific user identity.
func UserPrincipal(id string) Principal { return Principal("user:" + id) }

// RolePrincipal returns the principal for membership in a named role.
func RolePrincipal(name string) Principal { return Principal("role:" + name) }

// ActionPrincipal returns the principal for holders of a named capability.
func ActionPrincipal(name string) Principal { return Principal("action:" + name) }

// PrincipalSet is the set of principals describing one caller for one
// request. Order is irrelevant; membership is the only semantic operation.
type PrincipalSet map[Principal]struct{}

// NewPrincipalSet builds a set from the given principals.
func NewPrincipalSet(principals ...Principal) PrincipalSet {
	s := make(PrincipalSet, len(principals))
	for _, p := range principals {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is a member of the set.
func (s PrincipalSet) Has(p Principal) bool {
	_, ok := s[p]
	return ok
}

// Add inserts p into the set.
func (s PrincipalSet) Add(p Principal) { s[p] = struct{}{} }

// Slice returns the members in sorted order, for stable logging and tests.
func (s PrincipalSet) Slice() []Principal {
	out := make([]Principal, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the members as sorted plain strings.
func (s PrincipalSet) Strings() []string {
	members := s.Slice()
	out := make([]string, len(members))
	for i, p := range members {
		out[i] = string(p)
	}
	return out
}

// PrincipalProvider is implemented by caller/session types that expose the
// extra principals of an authenticated identity.
type PrincipalProvider interface {
	Principals() []Principal
}

// NormalizePrincipals resolves an arbitrary caller value into the full
// principal set for one request.
//
// A nil caller is anonymous and yields {Everyone}. A caller exposing extra
// principals — via the PrincipalProvider interface, a plain []Principal or
// []string, or a func() []Principal — yields {Everyone, Authenticated} plus
// the extras. An empty extras collection is treated the same as anonymous,
// and so is any caller shape this function does not recognize; malformed
// input is never an error.
func NormalizePrincipals(caller any) PrincipalSet {
	var extras []Principal

	switch c := caller.(type) {
	case nil:
	case PrincipalProvider:
		extras = c.Principals()
	case func() []Principal:
		if c != nil {
			extras = c()
		}
	case []Principal:
		extras = c
	case []string:
		extras = make([]Principal, len(c))
		for i, p := range c {
			extras[i] = Principal(p)
		}
	case Principal:
		extras = []Principal{c}
	}

	if len(extras) == 0 {
		return NewPrincipalSet(Everyone)
	}

	s := NewPrincipalSet(Everyone, Authenticated)
	for _, p := range extras {
		s.Add(p)
	}
	return s
}
