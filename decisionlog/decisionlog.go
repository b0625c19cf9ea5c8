// Package decisionlog defines the decision audit log Entry entity.
package decisionlog

import (
	"time"

	"github.com/rowguard/rowguard/id"
)

// Entry is a single authorization decision audit record.
type Entry struct {
	ID           id.DecisionID  `json:"id" db:"id"`
	Principals   []string       `json:"principals" db:"-"`
	Permission   string         `json:"permission" db:"permission"`
	Resource     string         `json:"resource,omitempty" db:"resource"`
	Decision     string         `json:"decision" db:"decision"`
	Reason       string         `json:"reason,omitempty" db:"reason"`
	MatchedIndex *int           `json:"matched_index,omitempty" db:"matched_index"`
	EvalTimeNs   int64          `json:"eval_time_ns" db:"eval_time_ns"`
	RequestIP    string         `json:"request_ip,omitempty" db:"request_ip"`
	Metadata     map[string]any `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// QueryFilter contains filters for querying decision logs.
type QueryFilter struct {
	Permission string     `json:"permission,omitempty"`
	Resource   string     `json:"resource,omitempty"`
	Principal  string     `json:"principal,omitempty"`
	Decision   string     `json:"decision,omitempty"`
	After      *time.Time `json:"after,omitempty"`
	Before     *time.Time `json:"before,omitempty"`
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}
