// Package rowguard provides row/object-level access control decisions for Go.
//
// A resource carries an ordered access control list (ACL) of entries, each
// granting or denying a set of permissions to one principal. A caller is
// described by a set of principals. The engine answers two questions: may
// this caller perform this action on this resource, and which of the
// permissions mentioned in the resource's ACL does this caller hold.
//
//	type Item struct {
//	    Owner string
//	}
//
//	func (i Item) ACL() rowguard.ACL {
//	    return rowguard.ACL{
//	        rowguard.Allow(rowguard.Authenticated, "view"),
//	        rowguard.Allow(rowguard.RolePrincipal("admin"), "edit"),
//	        rowguard.Allow(rowguard.UserPrincipal(i.Owner), "delete"),
//	    }
//	}
//
//	eng, err := rowguard.NewEngine()
//	result, err := eng.Check(ctx, &rowguard.CheckRequest{
//	    Principals: rowguard.NormalizePrincipals(user),
//	    Permission: "edit",
//	    Resource:   item,
//	})
//
// Evaluation is first-match-wins in ACL declaration order, and anything not
// explicitly allowed is denied. All decision paths are pure and safe for
// concurrent use.
package rowguard

// Effect is the outcome an access control entry prescribes when it matches.
type Effect string

const (
	// EffectAllow permits the matched permission for the matched principal.
	EffectAllow Effect = "allow"

	// EffectDeny blocks the matched permission for the matched principal.
	EffectDeny Effect = "deny"
)

// Decision is the authorization outcome of a check.
type Decision string

const (
	// DecisionAllow means an Allow entry matched the request.
	DecisionAllow Decision = "allow"

	// DecisionDenyExplicit means a Deny entry matched the request.
	DecisionDenyExplicit Decision = "deny_explicit"

	// DecisionDenyDefault means no entry matched; the implicit trailing
	// deny-everyone-everything rule applied.
	DecisionDenyDefault Decision = "deny_default"
)

// CheckRequest is the input to an authorization check.
type CheckRequest struct {
	// Principals is the caller's full principal set, usually built with
	// NormalizePrincipals. A nil or empty set is treated as anonymous.
	Principals PrincipalSet `json:"principals"`

	// Permission is the action being requested.
	Permission Permission `json:"permission"`

	// Resource is anything NormalizeACL can resolve to an ACL: an
	// ACLProvider, an ACL value, or a bare []ACE. Anything else yields an
	// empty ACL and therefore a default deny.
	Resource any `json:"-"`

	// ResourceName optionally labels the resource for audit records.
	ResourceName string `json:"resource_name,omitempty"`

	// Metadata is attached to the recorded decision, if recording is on.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// CheckResult is the outcome of an authorization check.
type CheckResult struct {
	Allowed    bool       `json:"allowed"`
	Decision   Decision   `json:"decision"`
	Reason     string     `json:"reason,omitempty"`
	Matched    *MatchInfo `json:"matched,omitempty"`
	EvalTimeNs int64      `json:"eval_time_ns"`
}

// MatchInfo describes the ACL entry that determined a decision.
type MatchInfo struct {
	// Index is the position of the entry in the normalized ACL.
	Index int `json:"index"`

	// Principal is the entry's principal that the caller matched.
	Principal Principal `json:"principal"`

	// Detail is a human-readable description of the match.
	Detail string `json:"detail,omitempty"`
}
