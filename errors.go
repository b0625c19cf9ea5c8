package rowguard

import "errors"

var (
	// ErrAccessDenied is returned by Enforce when a check is denied and no
	// custom denial error is configured.
	ErrAccessDenied = errors.New("rowguard: access denied")

	// ErrMalformedACE is returned when a resource's ACL contains a
	// structurally invalid entry. This is a caller contract violation, not a
	// recoverable runtime condition.
	ErrMalformedACE = errors.New("rowguard: malformed access control entry")

	// ErrNilRequest is returned when Check is called with a nil request.
	ErrNilRequest = errors.New("rowguard: nil check request")
)
