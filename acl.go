package rowguard

import "fmt"

// Permission is an opaque action name, e.g. "view" or "edit".
type Permission string

// All is the wildcard permission. Inside an entry's permission set it
// matches every requested permission. As a *requested* permission it is
// matched literally: asking for All succeeds only against an entry whose
// set explicitly contains All, it is not the union of every named grant.
const All Permission = "permissions:*"

// PermissionSet is the permissions an entry grants or denies. A single
// permission is a one-element set; it is never split into characters or
// otherwise iterated.
type PermissionSet []Permission

// Contains reports whether the set matches the requested permission.
// The wildcard check is explicit: an All member matches any request.
func (ps PermissionSet) Contains(requested Permission) bool {
	for _, p := range ps {
		if p == requested || p == All {
			return true
		}
	}
	return false
}

// ACE is one access control entry: an effect, a principal, and the
// permissions the effect applies to.
type ACE struct {
	Effect      Effect        `json:"effect"`
	Principal   Principal     `json:"principal"`
	Permissions PermissionSet `json:"permissions"`
}

// Allow builds an entry granting the permissions to the principal.
func Allow(principal Principal, permissions ...Permission) ACE {
	return ACE{Effect: EffectAllow, Principal: principal, Permissions: permissions}
}

// Deny builds an entry blocking the permissions for the principal.
func Deny(principal Principal, permissions ...Permission) ACE {
	return ACE{Effect: EffectDeny, Principal: principal, Permissions: permissions}
}

// ACL shorthands. DenyAll is what the implicit trailing rule of every
// evaluation looks like when written out.
var (
	AllowAll = Allow(Everyone, All)
	DenyAll  = Deny(Everyone, All)
)

// ACL is an ordered list of entries. Order is semantically significant:
// evaluation order equals declaration order, with no sorting, deduplication,
// or merging, and the first matching entry fully determines the result.
type ACL []ACE

// ACLProvider is implemented by resource types that compute their ACL.
// It takes precedence over every other resource shape during normalization,
// even when the implementing type is itself an ACL slice.
type ACLProvider interface {
	ACL() ACL
}

// NormalizeACL resolves an arbitrary resource value into its ACL.
//
// Resolution order: an ACLProvider implementation wins, then a direct ACL
// or []ACE value is used as-is, and anything else — including nil — yields
// an empty ACL, which denies everything downstream.
func NormalizeACL(resource any) ACL {
	switch r := resource.(type) {
	case ACLProvider:
		return r.ACL()
	case ACL:
		return r
	case []ACE:
		return ACL(r)
	default:
		return nil
	}
}

// ValidateACL reports the first structurally invalid entry in the ACL.
// An entry with an unknown effect, an empty principal, or no permissions is
// a programmer error, not a runtime condition; Engine.Check surfaces it as
// ErrMalformedACE instead of evaluating. The pure decision functions treat
// a matching entry with an unknown effect as a deny, never as an allow.
func ValidateACL(acl ACL) error {
	for i, ace := range acl {
		switch {
		case ace.Effect != EffectAllow && ace.Effect != EffectDeny:
			return fmt.Errorf("%w: entry %d has effect %q", ErrMalformedACE, i, ace.Effect)
		case ace.Principal == "":
			return fmt.Errorf("%w: entry %d has an empty principal", ErrMalformedACE, i)
		case len(ace.Permissions) == 0:
			return fmt.Errorf("%w: entry %d has no permissions", ErrMalformedACE, i)
		}
	}
	return nil
}
