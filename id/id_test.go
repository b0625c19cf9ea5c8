package id_test

import (
	"strings"
	"testing"

	"github.com/rowguard/rowguard/id"
)

func TestNew(t *testing.T) {
	i := id.New(id.PrefixDecision)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixDecision {
		t.Errorf("expected prefix %q, got %q", id.PrefixDecision, i.Prefix())
	}
}

func TestNewDecisionID(t *testing.T) {
	got := id.NewDecisionID().String()
	if !strings.HasPrefix(got, "dcsn_") {
		t.Errorf("expected prefix %q, got %q", "dcsn_", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := id.NewDecisionID()
	parsed, err := id.ParseDecisionID(orig.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip mismatch: %q != %q", parsed, orig)
	}
}

func TestParseRejectsWrongPrefix(t *testing.T) {
	other := id.New("role")
	if _, err := id.ParseDecisionID(other.String()); err == nil {
		t.Fatal("expected error for wrong prefix")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not-a-typeid", "dcsn_!!!"} {
		if _, err := id.Parse(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestNilID(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Fatal("expected Nil to be nil")
	}
	if id.Nil.String() != "" {
		t.Fatalf("expected empty string, got %q", id.Nil.String())
	}
}

func TestTextMarshaling(t *testing.T) {
	orig := id.NewDecisionID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatal(err)
	}
	if decoded.String() != orig.String() {
		t.Errorf("text round trip mismatch: %q != %q", decoded, orig)
	}
}

func TestSQLValueScan(t *testing.T) {
	orig := id.NewDecisionID()

	v, err := orig.Value()
	if err != nil {
		t.Fatal(err)
	}

	var scanned id.ID
	if err := scanned.Scan(v); err != nil {
		t.Fatal(err)
	}
	if scanned.String() != orig.String() {
		t.Errorf("sql round trip mismatch: %q != %q", scanned, orig)
	}

	var fromNull id.ID
	if err := fromNull.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !fromNull.IsNil() {
		t.Fatal("expected nil ID from NULL")
	}
}
