package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
)

type decisionModel struct {
	grove.BaseModel `grove:"table:rowguard_decisions"`
	ID              string    `grove:"id,pk"`
	Principals      string    `grove:"principals,notnull"` // JSON array of strings
	Permission      string    `grove:"permission,notnull"`
	Resource        string    `grove:"resource,notnull"`
	Decision        string    `grove:"decision,notnull"`
	Reason          string    `grove:"reason"`
	MatchedIndex    *int      `grove:"matched_index"`
	EvalTimeNs      int64     `grove:"eval_time_ns,notnull"`
	RequestIP       string    `grove:"request_ip"`
	Metadata        string    `grove:"metadata"` // JSON text
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func decisionToModel(e *decisionlog.Entry) (*decisionModel, error) {
	principals, err := json.Marshal(e.Principals)
	if err != nil {
		return nil, fmt.Errorf("marshal decision principals: %w", err)
	}
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal decision metadata: %w", err)
	}
	m := &decisionModel{
		ID:         e.ID.String(),
		Principals: string(principals),
		Permission: e.Permission,
		Resource:   e.Resource,
		Decision:   e.Decision,
		Reason:     e.Reason,
		EvalTimeNs: e.EvalTimeNs,
		RequestIP:  e.RequestIP,
		Metadata:   string(metadata),
		CreatedAt:  e.CreatedAt,
	}
	if e.MatchedIndex != nil {
		idx := *e.MatchedIndex
		m.MatchedIndex = &idx
	}
	return m, nil
}

func decisionFromModel(m *decisionModel) (*decisionlog.Entry, error) {
	did, _ := id.ParseDecisionID(m.ID) //nolint:errcheck // stored IDs are always valid
	var principals []string
	if m.Principals != "" {
		if err := json.Unmarshal([]byte(m.Principals), &principals); err != nil {
			return nil, fmt.Errorf("unmarshal decision principals: %w", err)
		}
	}
	var metadata map[string]any
	if m.Metadata != "" && m.Metadata != "null" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshal decision metadata: %w", err)
		}
	}
	e := &decisionlog.Entry{
		ID:         did,
		Principals: principals,
		Permission: m.Permission,
		Resource:   m.Resource,
		Decision:   m.Decision,
		Reason:     m.Reason,
		EvalTimeNs: m.EvalTimeNs,
		RequestIP:  m.RequestIP,
		Metadata:   metadata,
		CreatedAt:  m.CreatedAt,
	}
	if m.MatchedIndex != nil {
		idx := *m.MatchedIndex
		e.MatchedIndex = &idx
	}
	return e, nil
}

// jsonStringLiteral renders s as it appears inside a JSON-encoded string
// array, quotes included, so a LIKE match cannot hit a substring of a
// longer principal.
func jsonStringLiteral(s string) string {
	b, _ := json.Marshal(s) //nolint:errcheck // strings always marshal
	return string(b)
}
