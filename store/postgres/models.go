package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
)

type decisionModel struct {
	grove.BaseModel `grove:"table:rowguard_decisions"`
	ID              string         `grove:"id,pk"`
	Principals      []string       `grove:"principals,type:jsonb"`
	Permission      string         `grove:"permission,notnull"`
	Resource        string         `grove:"resource,notnull"`
	Decision        string         `grove:"decision,notnull"`
	Reason          string         `grove:"reason"`
	MatchedIndex    *int           `grove:"matched_index"`
	EvalTimeNs      int64          `grove:"eval_time_ns,notnull"`
	RequestIP       string         `grove:"request_ip"`
	Metadata        map[string]any `grove:"metadata,type:jsonb"`
	CreatedAt       time.Time      `grove:"created_at,notnull"`
}

func decisionToModel(e *decisionlog.Entry) *decisionModel {
	m := &decisionModel{
		ID:         e.ID.String(),
		Principals: e.Principals,
		Permission: e.Permission,
		Resource:   e.Resource,
		Decision:   e.Decision,
		Reason:     e.Reason,
		EvalTimeNs: e.EvalTimeNs,
		RequestIP:  e.RequestIP,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
	if e.MatchedIndex != nil {
		idx := *e.MatchedIndex
		m.MatchedIndex = &idx
	}
	return m
}

func decisionFromModel(m *decisionModel) *decisionlog.Entry {
	did, _ := id.ParseDecisionID(m.ID) //nolint:errcheck // stored IDs are always valid
	e := &decisionlog.Entry{
		ID:         did,
		Principals: m.Principals,
		Permission: m.Permission,
		Resource:   m.Resource,
		Decision:   m.Decision,
		Reason:     m.Reason,
		EvalTimeNs: m.EvalTimeNs,
		RequestIP:  m.RequestIP,
		Metadata:   m.Metadata,
		CreatedAt:  m.CreatedAt,
	}
	if m.MatchedIndex != nil {
		idx := *m.MatchedIndex
		e.MatchedIndex = &idx
	}
	return e
}

// jsonArray renders a single-element JSON array for JSONB containment.
func jsonArray(s string) string {
	b, _ := json.Marshal([]string{s}) //nolint:errcheck // strings always marshal
	return string(b)
}
