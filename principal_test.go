package rowguard

import (
	"reflect"
	"testing"
)

type testCaller struct {
	principals []Principal
}

func (c testCaller) Principals() []Principal { return c.principals }

func TestNormalizePrincipals(t *testing.T) {
	tests := []struct {
		name   string
		caller any
		want   []Principal
	}{
		{
			name:   "nil caller is anonymous",
			caller: nil,
			want:   []Principal{Everyone},
		},
		{
			name:   "provider with extras",
			caller: testCaller{principals: []Principal{UserPrincipal("42"), RolePrincipal("admin")}},
			want:   []Principal{RolePrincipal("admin"), Authenticated, Everyone, UserPrincipal("42")},
		},
		{
			name:   "provider with no extras is anonymous",
			caller: testCaller{},
			want:   []Principal{Everyone},
		},
		{
			name:   "plain principal slice",
			caller: []Principal{RolePrincipal("editor")},
			want:   []Principal{RolePrincipal("editor"), Authenticated, Everyone},
		},
		{
			name:   "string slice",
			caller: []string{"user:7"},
			want:   []Principal{Authenticated, Everyone, UserPrincipal("7")},
		},
		{
			name:   "empty string slice is anonymous",
			caller: []string{},
			want:   []Principal{Everyone},
		},
		{
			name:   "single principal",
			caller: UserPrincipal("9"),
			want:   []Principal{Authenticated, Everyone, UserPrincipal("9")},
		},
		{
			name:   "callable extras",
			caller: func() []Principal { return []Principal{ActionPrincipal("publish")} },
			want:   []Principal{ActionPrincipal("publish"), Authenticated, Everyone},
		},
		{
			name:   "unrecognized shape is anonymous",
			caller: 42,
			want:   []Principal{Everyone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrincipals(tt.caller)
			want := NewPrincipalSet(tt.want...).Slice()
			if !reflect.DeepEqual(got.Slice(), want) {
				t.Fatalf("got %v, want %v", got.Slice(), want)
			}
		})
	}
}

func TestPrincipalSetMembership(t *testing.T) {
	s := NewPrincipalSet(Everyone, UserPrincipal("42"))
	if !s.Has(Everyone) || !s.Has(UserPrincipal("42")) {
		t.Fatal("expected members to be present")
	}
	if s.Has(Authenticated) {
		t.Fatal("unexpected member")
	}

	s.Add(Authenticated)
	if !s.Has(Authenticated) {
		t.Fatal("Add did not insert")
	}
}

func TestPrincipalSetStrings(t *testing.T) {
	s := NewPrincipalSet(UserPrincipal("b"), UserPrincipal("a"))
	got := s.Strings()
	want := []string{"user:a", "user:b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
