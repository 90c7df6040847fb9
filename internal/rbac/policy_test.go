package rbac

import (
	"testing"
)

func TestCanAccessLongestPrefixWins(t *testing.T) {
	policy := DefaultPolicy()

	testCases := []struct {
		name  string
		roles []string
		path  string
		want  bool
	}{
		{"staff reads own claims", []string{"staff"}, "/protected/claims/123", true},
		{"staff cannot reach approvals", []string{"staff"}, "/protected/claims/approvals", false},
		{"manager reaches approvals", []string{"manager"}, "/protected/claims/approvals", true},
		{"finance reaches approvals via hierarchy", []string{"finance"}, "/protected/overtime/approvals", true},
		{"manager blocked from admin users", []string{"manager"}, "/protected/admin/users", false},
		{"admin user routes need exact membership", []string{"finance"}, "/protected/admin/users", false},
		{"admin reaches user admin", []string{"admin"}, "/protected/admin/users/9", true},
		{"superadmin always allowed", []string{"superadmin"}, "/protected/admin/users", true},
		{"unmatched path is public", []string{}, "/health", true},
		{"no roles rejected on guarded path", nil, "/protected/claims", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.CanAccess(tc.roles, tc.path); got != tc.want {
				t.Errorf("CanAccess(%v, %q) = %v, want %v", tc.roles, tc.path, got, tc.want)
			}
		})
	}
}

func TestCanAccessExactRoleFlag(t *testing.T) {
	policy := NewAccessPolicy([]PolicyRule{
		{Prefix: "/x", Roles: []Role{RoleManager}, AllowHierarchy: false},
		{Prefix: "/y", Roles: []Role{RoleManager}, AllowHierarchy: true},
	})

	// Admin outranks manager but the exact-membership rule ignores hierarchy.
	if policy.CanAccess([]string{"admin"}, "/x") {
		t.Error("exact rule should reject admin without the manager tag")
	}
	if !policy.CanAccess([]string{"admin"}, "/y") {
		t.Error("hierarchy rule should accept admin for manager target")
	}
}
