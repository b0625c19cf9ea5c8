package api

// ACE is the wire form of one access control entry.
type ACE struct {
	Effect      string   `json:"effect" description:"Entry effect (allow or deny)"`
	Principal   string   `json:"principal" description:"Principal the entry applies to"`
	Permissions []string `json:"permissions" description:"Permissions the effect covers"`
}

// CheckRequest is the request body for an access check. The resource's
// ACL travels in the body; the engine never loads resources itself.
type CheckRequest struct {
	Principals []string       `json:"principals" description:"Caller principals before normalization"`
	Permission string         `json:"permission" description:"Requested permission"`
	ACL        []ACE          `json:"acl" description:"Ordered access control list of the resource"`
	Resource   string         `json:"resource,omitempty" description:"Resource label for audit records"`
	Metadata   map[string]any `json:"metadata,omitempty" description:"Attached to the recorded decision"`
}

// BatchCheckRequest contains multiple checks.
type BatchCheckRequest struct {
	Checks []CheckRequest `json:"checks" description:"List of access checks"`
}

// PermissionsRequest is the request body for permission enumeration.
type PermissionsRequest struct {
	Principals []string `json:"principals" description:"Caller principals before normalization"`
	ACL        []ACE    `json:"acl" description:"Ordered access control list of the resource"`
}

// GetDecisionRequest is a placeholder; the decision ID is a path parameter.
type GetDecisionRequest struct{}

// ListDecisionsRequest holds query parameters for querying decision logs.
type ListDecisionsRequest struct {
	Permission string `query:"permission" description:"Filter by permission"`
	Resource   string `query:"resource" description:"Filter by resource label"`
	Principal  string `query:"principal" description:"Filter by principal"`
	Decision   string `query:"decision" description:"Filter by decision code"`
	After      string `query:"after" description:"After timestamp (RFC3339)"`
	Before     string `query:"before" description:"Before timestamp (RFC3339)"`
	Limit      int    `query:"limit" description:"Maximum results"`
	Offset     int    `query:"offset" description:"Results to skip"`
}
