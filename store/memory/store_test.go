package memory

import (
	"context"
	"testing"
	"time"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/store"
)

// Compile-time check that *Store implements store.Store.
var _ store.Store = (*Store)(nil)

func newEntry(permission, decision string, at time.Time) *decisionlog.Entry {
	return &decisionlog.Entry{
		ID:         id.NewDecisionID(),
		Principals: []string{"system:everyone", "system:authenticated", "user:alice"},
		Permission: permission,
		Resource:   "item:42",
		Decision:   decision,
		EvalTimeNs: 1200,
		CreatedAt:  at,
	}
}

func TestCreateGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := newEntry("view", "allow", time.Now().UTC())
	if err := s.CreateDecision(ctx, e); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDecision(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Permission != "view" || got.Decision != "allow" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetDecision(ctx, id.NewDecisionID()); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	_ = s.CreateDecision(ctx, newEntry("view", "allow", now.Add(-2*time.Hour)))
	_ = s.CreateDecision(ctx, newEntry("edit", "deny_default", now.Add(-time.Hour)))
	_ = s.CreateDecision(ctx, newEntry("edit", "allow", now))

	tests := []struct {
		name   string
		filter *decisionlog.QueryFilter
		want   int
	}{
		{"all", nil, 3},
		{"by permission", &decisionlog.QueryFilter{Permission: "edit"}, 2},
		{"by decision", &decisionlog.QueryFilter{Decision: "allow"}, 2},
		{"by principal", &decisionlog.QueryFilter{Principal: "user:alice"}, 3},
		{"by unknown principal", &decisionlog.QueryFilter{Principal: "user:bob"}, 0},
		{"by resource", &decisionlog.QueryFilter{Resource: "item:42"}, 3},
		{"after", &decisionlog.QueryFilter{After: &now}, 1},
		{"limit", &decisionlog.QueryFilter{Limit: 2}, 2},
		{"offset", &decisionlog.QueryFilter{Offset: 2}, 1},
		{"offset past end", &decisionlog.QueryFilter{Offset: 10}, 0},
		{"negative offset ignored", &decisionlog.QueryFilter{Offset: -1}, 3},
		{"negative limit ignored", &decisionlog.QueryFilter{Limit: -5}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.ListDecisions(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != tt.want {
				t.Fatalf("expected %d entries, got %d", tt.want, len(list))
			}
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	_ = s.CreateDecision(ctx, newEntry("view", "allow", now.Add(-time.Hour)))
	_ = s.CreateDecision(ctx, newEntry("edit", "allow", now))

	list, err := s.ListDecisions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].Permission != "edit" {
		t.Fatalf("expected newest entry first, got %q", list[0].Permission)
	}
}

func TestCountIgnoresPagination(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_ = s.CreateDecision(ctx, newEntry("view", "allow", now))
	}

	count, err := s.CountDecisions(ctx, &decisionlog.QueryFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	_ = s.CreateDecision(ctx, newEntry("view", "allow", now.Add(-48*time.Hour)))
	_ = s.CreateDecision(ctx, newEntry("edit", "allow", now))

	purged, err := s.PurgeDecisions(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged, got %d", purged)
	}

	count, _ := s.CountDecisions(ctx, nil)
	if count != 1 {
		t.Fatalf("expected 1 remaining, got %d", count)
	}
}

func TestCopyOnWrite(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := newEntry("view", "allow", time.Now().UTC())
	_ = s.CreateDecision(ctx, e)

	// Mutating the caller's entry must not affect the stored copy.
	e.Decision = "deny_default"
	e.Principals[0] = "mutated"

	got, err := s.GetDecision(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Decision != "allow" {
		t.Fatal("stored entry was mutated through caller reference")
	}
	if got.Principals[0] != "system:everyone" {
		t.Fatal("stored principals were mutated through caller reference")
	}
}
