package rowguard

import (
	"context"
	"errors"
	"testing"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/store/memory"
)

// item carries an owner-aware ACL, the way applications are expected to.
type item struct {
	owner string
}

func (i item) ACL() ACL {
	return ACL{
		Allow(Authenticated, "view"),
		Allow(RolePrincipal("admin"), "edit"),
		Allow(UserPrincipal(i.owner), "edit", "delete"),
		Deny(Everyone, "delete"),
	}
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *memory.Store) {
	t.Helper()
	s := memory.New()
	eng, err := NewEngine(append([]Option{WithStore(s)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return eng, s
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	res := item{owner: "alice"}

	tests := []struct {
		name       string
		caller     any
		permission Permission
		allowed    bool
		decision   Decision
	}{
		{"authenticated can view", []Principal{UserPrincipal("bob")}, "view", true, DecisionAllow},
		{"anonymous cannot view", nil, "view", false, DecisionDenyDefault},
		{"owner can edit", []Principal{UserPrincipal("alice")}, "edit", true, DecisionAllow},
		{"admin can edit", []Principal{RolePrincipal("admin")}, "edit", true, DecisionAllow},
		{"other user cannot edit", []Principal{UserPrincipal("bob")}, "edit", false, DecisionDenyDefault},
		{"owner can delete before the deny", []Principal{UserPrincipal("alice")}, "delete", true, DecisionAllow},
		{"admin hits the explicit delete deny", []Principal{RolePrincipal("admin")}, "delete", false, DecisionDenyExplicit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eng.Check(ctx, &CheckRequest{
				Principals: NormalizePrincipals(tt.caller),
				Permission: tt.permission,
				Resource:   res,
			})
			if err != nil {
				t.Fatal(err)
			}
			if result.Allowed != tt.allowed {
				t.Fatalf("allowed = %v, want %v", result.Allowed, tt.allowed)
			}
			if result.Decision != tt.decision {
				t.Fatalf("decision = %q, want %q", result.Decision, tt.decision)
			}
			if tt.decision != DecisionDenyDefault && result.Matched == nil {
				t.Fatal("expected match info for a determined decision")
			}
		})
	}
}

func TestCheckNilRequest(t *testing.T) {
	eng, _ := newTestEngine(t)
	if _, err := eng.Check(context.Background(), nil); !errors.Is(err, ErrNilRequest) {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
}

func TestCheckMalformedACL(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Check(context.Background(), &CheckRequest{
		Permission: "view",
		Resource:   ACL{{Effect: "grant", Principal: Everyone, Permissions: PermissionSet{"view"}}},
	})
	if !errors.Is(err, ErrMalformedACE) {
		t.Fatalf("expected ErrMalformedACE, got %v", err)
	}
}

func TestCheckEmptyPrincipalsIsAnonymous(t *testing.T) {
	eng, _ := newTestEngine(t)
	result, err := eng.Check(context.Background(), &CheckRequest{
		Permission: "view",
		Resource:   ACL{Allow(Everyone, "view")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("anonymous caller should match an Everyone entry")
	}
}

func TestEnforce(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t)
	res := item{owner: "alice"}

	err := eng.Enforce(ctx, &CheckRequest{
		Principals: NormalizePrincipals([]Principal{UserPrincipal("alice")}),
		Permission: "edit",
		Resource:   res,
	})
	if err != nil {
		t.Fatalf("owner edit should pass: %v", err)
	}

	err = eng.Enforce(ctx, &CheckRequest{
		Principals: NormalizePrincipals(nil),
		Permission: "edit",
		Resource:   res,
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestEnforceCustomDenialError(t *testing.T) {
	sentinel := errors.New("nope")
	eng, _ := newTestEngine(t, WithDenialError(sentinel))

	err := eng.Enforce(context.Background(), &CheckRequest{
		Permission: "view",
		Resource:   ACL{},
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected custom denial error, got %v", err)
	}
}

func TestCan(t *testing.T) {
	eng, _ := newTestEngine(t)
	res := item{owner: "alice"}

	ok, err := eng.Can(context.Background(), NormalizePrincipals([]Principal{UserPrincipal("bob")}), "view", res)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected allow")
	}
}

func TestGrants(t *testing.T) {
	eng, _ := newTestEngine(t)
	res := item{owner: "alice"}

	g, err := eng.Grants(context.Background(), NormalizePrincipals([]Principal{UserPrincipal("alice")}), res)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Allowed("view") || !g.Allowed("edit") || !g.Allowed("delete") {
		t.Fatalf("owner grants wrong: %v", g.Map())
	}

	g, err = eng.Grants(context.Background(), NormalizePrincipals([]Principal{UserPrincipal("bob")}), res)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Allowed("view") || g.Allowed("edit") || g.Allowed("delete") {
		t.Fatalf("non-owner grants wrong: %v", g.Map())
	}
}

func TestGrantsDefaultGrantConfig(t *testing.T) {
	eng, _ := newTestEngine(t, WithConfig(Config{DefaultGrant: true}))

	g, err := eng.Grants(context.Background(), NormalizePrincipals(nil), ACL{Deny(Everyone, "edit")})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Allowed("unmentioned") {
		t.Fatal("absent permission should follow the configured default")
	}
	if g.Allowed("edit") {
		t.Fatal("computed deny must not follow the default")
	}
}

func TestCheckRecordsDecision(t *testing.T) {
	ctx := context.Background()
	eng, s := newTestEngine(t)

	_, err := eng.Check(ctx, &CheckRequest{
		Principals:   NormalizePrincipals([]Principal{UserPrincipal("alice")}),
		Permission:   "delete",
		Resource:     item{owner: "alice"},
		ResourceName: "item:42",
		Metadata:     map[string]any{"request_id": "r-1"},
	})
	if err != nil {
		t.Fatal(err)
	}

	entries, err := s.ListDecisions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 recorded decision, got %d", len(entries))
	}
	e := entries[0]
	if e.Permission != "delete" || e.Resource != "item:42" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Decision != string(DecisionAllow) {
		t.Fatalf("decision = %q", e.Decision)
	}
	if e.MatchedIndex == nil || *e.MatchedIndex != 2 {
		t.Fatalf("matched index = %v, want 2", e.MatchedIndex)
	}
	if e.Metadata["request_id"] != "r-1" {
		t.Fatalf("metadata not carried: %v", e.Metadata)
	}
}

func TestCheckRecordingDisabled(t *testing.T) {
	ctx := context.Background()
	off := false
	eng, s := newTestEngine(t, WithConfig(Config{RecordDecisions: &off}))

	if _, err := eng.Check(ctx, &CheckRequest{Permission: "view", Resource: ACL{}}); err != nil {
		t.Fatal(err)
	}

	count, err := s.CountDecisions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected no recorded decisions, got %d", count)
	}
}

// hookPlugin records which lifecycle hooks fired.
type hookPlugin struct {
	before   int
	after    int
	recorded int
	shutdown int
}

func (p *hookPlugin) Name() string { return "hooks" }

func (p *hookPlugin) OnBeforeCheck(context.Context, any) error { p.before++; return nil }

func (p *hookPlugin) OnAfterCheck(context.Context, any, any) error { p.after++; return nil }

func (p *hookPlugin) OnDecisionRecorded(context.Context, *decisionlog.Entry) error {
	p.recorded++
	return nil
}

func (p *hookPlugin) OnShutdown(context.Context) error { p.shutdown++; return nil }

func TestPluginLifecycle(t *testing.T) {
	ctx := context.Background()
	hooks := &hookPlugin{}
	eng, _ := newTestEngine(t, WithPlugin(hooks))

	if _, err := eng.Check(ctx, &CheckRequest{
		Permission: "view",
		Resource:   ACL{Allow(Everyone, "view")},
	}); err != nil {
		t.Fatal(err)
	}
	if hooks.before != 1 || hooks.after != 1 || hooks.recorded != 1 {
		t.Fatalf("hook counts: %+v", hooks)
	}

	if err := eng.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if hooks.shutdown != 1 {
		t.Fatal("shutdown hook was not fired")
	}
}
