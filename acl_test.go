package rowguard

import (
	"errors"
	"reflect"
	"testing"
)

// aclResource computes its ACL via the provider interface.
type aclResource struct {
	acl ACL
}

func (r aclResource) ACL() ACL { return r.acl }

// providerSlice is an ACL slice that also implements ACLProvider. The
// provider must win over the slice identity.
type providerSlice ACL

func (p providerSlice) ACL() ACL {
	return ACL{Allow(Everyone, "from-provider")}
}

func TestNormalizeACL(t *testing.T) {
	direct := ACL{Allow(Everyone, "view")}

	tests := []struct {
		name     string
		resource any
		want     ACL
	}{
		{"nil resource", nil, nil},
		{"direct ACL", direct, direct},
		{"bare entry slice", []ACE{Allow(Everyone, "view")}, direct},
		{"provider", aclResource{acl: direct}, direct},
		{"unrecognized shape", "not a resource", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeACL(tt.resource)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeACLProviderWinsOverSlice(t *testing.T) {
	r := providerSlice{Allow(Everyone, "from-slice")}
	got := NormalizeACL(r)
	if len(got) != 1 || got[0].Permissions[0] != "from-provider" {
		t.Fatalf("provider should take precedence, got %v", got)
	}
}

func TestPermissionSetContains(t *testing.T) {
	ps := PermissionSet{"view", "edit"}
	if !ps.Contains("view") || !ps.Contains("edit") {
		t.Fatal("expected named permissions to match")
	}
	if ps.Contains("delete") {
		t.Fatal("unexpected match")
	}

	wild := PermissionSet{All}
	if !wild.Contains("anything") {
		t.Fatal("wildcard should match any request")
	}
	// The wildcard as a *request* only matches a literal All member.
	if ps.Contains(All) {
		t.Fatal("requesting All should not match named permissions")
	}
	if !wild.Contains(All) {
		t.Fatal("requesting All should match a literal All member")
	}
}

func TestValidateACL(t *testing.T) {
	tests := []struct {
		name    string
		acl     ACL
		wantErr bool
	}{
		{"nil", nil, false},
		{"valid", ACL{Allow(Everyone, "view"), DenyAll}, false},
		{"unknown effect", ACL{{Effect: "grant", Principal: Everyone, Permissions: PermissionSet{"view"}}}, true},
		{"empty principal", ACL{{Effect: EffectAllow, Principal: "", Permissions: PermissionSet{"view"}}}, true},
		{"no permissions", ACL{{Effect: EffectAllow, Principal: Everyone}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateACL(tt.acl)
			if tt.wantErr && !errors.Is(err, ErrMalformedACE) {
				t.Fatalf("expected ErrMalformedACE, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestACLShorthands(t *testing.T) {
	if AllowAll.Effect != EffectAllow || AllowAll.Principal != Everyone || !AllowAll.Permissions.Contains("anything") {
		t.Fatalf("unexpected AllowAll: %+v", AllowAll)
	}
	if DenyAll.Effect != EffectDeny || DenyAll.Principal != Everyone || !DenyAll.Permissions.Contains("anything") {
		t.Fatalf("unexpected DenyAll: %+v", DenyAll)
	}
}
