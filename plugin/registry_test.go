package plugin

import (
	"context"
	"log/slog"
	"testing"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
)

// testPlugin implements Plugin + AfterCheck + DecisionRecorded.
type testPlugin struct {
	afterCheckCalled       bool
	decisionRecordedCalled bool
}

func (t *testPlugin) Name() string { return "test-plugin" }

func (t *testPlugin) OnAfterCheck(_ context.Context, _, _ any) error {
	t.afterCheckCalled = true
	return nil
}

func (t *testPlugin) OnDecisionRecorded(_ context.Context, _ *decisionlog.Entry) error {
	t.decisionRecordedCalled = true
	return nil
}

// minimalPlugin only implements Plugin (no hooks).
type minimalPlugin struct{}

func (m *minimalPlugin) Name() string { return "minimal" }

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	tp := &testPlugin{}
	reg.Register(tp)
	reg.Register(&minimalPlugin{})

	if len(reg.Plugins()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(reg.Plugins()))
	}

	// Should dispatch DecisionRecorded to testPlugin only.
	reg.EmitDecisionRecorded(ctx, &decisionlog.Entry{ID: id.NewDecisionID()})
	if !tp.decisionRecordedCalled {
		t.Fatal("OnDecisionRecorded was not called")
	}

	// Should dispatch AfterCheck.
	reg.EmitAfterCheck(ctx, nil, nil)
	if !tp.afterCheckCalled {
		t.Fatal("OnAfterCheck was not called")
	}

	// Should not panic on hooks with no listeners.
	reg.EmitBeforeCheck(ctx, nil)
	reg.EmitShutdown(ctx)
}
