package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestMenuFor(t *testing.T) {
	cases := []struct {
		role     Role
		items    int
		children int
	}{
		{RoleUser, 1, 0},
		{RoleAdmin, 3, 1},
		{RoleSuperAdmin, 3, 2},
		{Role("unknown"), 1, 0},
	}
	for _, tc := range cases {
		menu := MenuFor(tc.role)
		if len(menu) != tc.items {
			t.Fatalf("%s: expected %d items, got %d", tc.role, tc.items, len(menu))
		}
		if menu[0].Name != "Dashboard" {
			t.Fatalf("%s: dashboard must come first", tc.role)
		}
		if tc.items > 1 && len(menu[2].Children) != tc.children {
			t.Fatalf("%s: expected %d user entries, got %d", tc.role, tc.children, len(menu[2].Children))
		}
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrWrongCredentials)
	if KindOf(wrapped) != KindUnauthenticated {
		t.Fatalf("expected unauthenticated through wrapping")
	}
	if !errors.Is(wrapped, ErrWrongCredentials) {
		t.Fatalf("expected sentinel identity to survive wrapping")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("unclassified errors are internal")
	}
	cause := errors.New("socket closed")
	if err := Internal(cause); !errors.Is(err, cause) {
		t.Fatalf("internal errors must keep their cause")
	}
}

func TestAccessPolicy(t *testing.T) {
	p := RequireRole(RoleAdmin, RoleSuperAdmin)
	if p.Stage != GuardRole || !p.Allows(RoleAdmin) || p.Allows(RoleUser) {
		t.Fatalf("unexpected role policy: %+v", p)
	}
	if Open().Allows(RoleSuperAdmin) {
		t.Fatalf("open policies carry no roles")
	}
	if RequireRoleOrOwner(RoleSuperAdmin).Stage.String() != "role_or_owner" {
		t.Fatalf("unexpected stage name")
	}
}

func TestUserClone(t *testing.T) {
	u := &User{ID: "1", Country: &Country{Name: "Chile", CCA2: "cl"}}
	c := u.Clone()
	c.Country.Name = "Peru"
	if u.Country.Name != "Chile" {
		t.Fatalf("clone must not share country")
	}
	if (*User)(nil).Clone() != nil {
		t.Fatalf("nil clone must be nil")
	}
	if !RoleSuperAdmin.Valid() || Role("root").Valid() {
		t.Fatalf("unexpected role validity")
	}
}
