package rowguard

// HasPermission reports whether the principals hold the requested permission
// on the resource.
//
// The resource's ACL is walked in declaration order. The first entry whose
// permission set matches the request and whose principal is a member of the
// caller's set fully determines the result; later entries are never
// consulted, so an early deny permanently shadows a later allow and vice
// versa. If no entry matches both conditions the result is false — an
// implicit trailing Deny(Everyone, All).
func HasPermission(principals PrincipalSet, requested Permission, resource any) bool {
	for _, ace := range NormalizeACL(resource) {
		if !ace.Permissions.Contains(requested) {
			continue
		}
		if !principals.Has(ace.Principal) {
			continue
		}
		return ace.Effect == EffectAllow
	}
	return false
}

// ListPermissions resolves every permission mentioned in the resource's ACL
// to its grant decision for the given principals.
//
// Keys are the distinct permission names appearing in any entry's set,
// flattened, in order of first appearance; an entry containing All
// contributes the literal All token as a key, not an expansion (there is no
// global permission registry to expand against). Each key is decided
// independently with HasPermission over the full original ACL, so an entry
// for one permission never influences another's resolution while
// order-dependent shadowing still applies per key.
func ListPermissions(principals PrincipalSet, resource any) *Grants {
	acl := NormalizeACL(resource)

	g := NewGrants(false)
	for _, ace := range acl {
		for _, p := range ace.Permissions {
			if _, seen := g.m[p]; seen {
				continue
			}
			g.set(p, HasPermission(principals, p, acl))
		}
	}
	return g
}

// Grants maps the permissions mentioned in a resource's ACL to their grant
// decisions. Lookups of permissions that were never present in the ACL
// return a configurable default (false unless chosen otherwise); the default
// never changes computed entries.
type Grants struct {
	def   bool
	order []Permission
	m     map[Permission]bool
}

// NewGrants returns an empty Grants container with the given default for
// absent permissions.
func NewGrants(def bool) *Grants {
	return &Grants{def: def, m: make(map[Permission]bool)}
}

func (g *Grants) set(p Permission, allowed bool) {
	if _, ok := g.m[p]; !ok {
		g.order = append(g.order, p)
	}
	g.m[p] = allowed
}

// Allowed reports the decision for p, falling back to the default when p was
// never mentioned in the ACL.
func (g *Grants) Allowed(p Permission) bool {
	if v, ok := g.m[p]; ok {
		return v
	}
	return g.def
}

// Get returns the decision for p and whether p was present in the ACL.
func (g *Grants) Get(p Permission) (allowed, present bool) {
	v, ok := g.m[p]
	if !ok {
		return g.def, false
	}
	return v, true
}

// Permissions returns the enumerated permission names in order of first
// appearance in the ACL.
func (g *Grants) Permissions() []Permission {
	out := make([]Permission, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of enumerated permissions.
func (g *Grants) Len() int { return len(g.m) }

// Map returns a copy of the computed entries.
func (g *Grants) Map() map[Permission]bool {
	out := make(map[Permission]bool, len(g.m))
	for p, v := range g.m {
		out[p] = v
	}
	return out
}

// WithDefault returns a copy of g whose absent-key default is def.
func (g *Grants) WithDefault(def bool) *Grants {
	out := &Grants{def: def, order: append([]Permission(nil), g.order...), m: g.Map()}
	return out
}
