package api

// CheckResponse is the response for an access check.
type CheckResponse struct {
	Allowed    bool       `json:"allowed" description:"Whether the request is allowed"`
	Decision   string     `json:"decision" description:"Decision code"`
	Reason     string     `json:"reason,omitempty" description:"Human-readable reason"`
	Matched    *MatchInfo `json:"matched,omitempty" description:"Entry that determined the decision"`
	EvalTimeNs int64      `json:"eval_time_ns" description:"Evaluation time in nanoseconds"`
}

// MatchInfo identifies the matched access control entry.
type MatchInfo struct {
	Index     int    `json:"index" description:"Position in the normalized ACL"`
	Principal string `json:"principal" description:"Matched principal"`
	Detail    string `json:"detail,omitempty" description:"Match detail"`
}

// BatchCheckResponse contains results for multiple checks.
type BatchCheckResponse struct {
	Results []CheckResponse `json:"results" description:"Check results in order"`
}

// PermissionsResponse enumerates the caller's grants over an ACL.
type PermissionsResponse struct {
	Permissions map[string]bool `json:"permissions" description:"Permission to granted flag"`
}

// CountResponse carries a single count.
type CountResponse struct {
	Count int64 `json:"count" description:"Number of matching entries"`
}
