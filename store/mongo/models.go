package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
)

type decisionModel struct {
	grove.BaseModel `grove:"table:rowguard_decisions"`
	ID              string         `grove:"id,pk"          bson:"_id"`
	Principals      []string       `grove:"principals"     bson:"principals"`
	Permission      string         `grove:"permission"     bson:"permission"`
	Resource        string         `grove:"resource"       bson:"resource"`
	Decision        string         `grove:"decision"       bson:"decision"`
	Reason          string         `grove:"reason"         bson:"reason"`
	MatchedIndex    *int           `grove:"matched_index"  bson:"matched_index,omitempty"`
	EvalTimeNs      int64          `grove:"eval_time_ns"   bson:"eval_time_ns"`
	RequestIP       string         `grove:"request_ip"     bson:"request_ip"`
	Metadata        map[string]any `grove:"metadata"       bson:"metadata,omitempty"`
	CreatedAt       time.Time      `grove:"created_at"     bson:"created_at"`
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
