package rbac

import (
	"testing"
)

func TestSuperadminGetsEveryPermission(t *testing.T) {
	roles := []string{"superadmin"}

	for _, role := range AllRoles() {
		for _, perm := range Permissions(role) {
			if !HasPermission(roles, perm) {
				t.Errorf("superadmin should hold %q", perm)
			}
		}
	}
}

func TestInheritanceFollowsMaxHeldLevel(t *testing.T) {
	testCases := []struct {
		name    string
		roles   []string
		want    []string
		notWant []string
	}{
		{
			name:    "staff alone holds only staff grants",
			roles:   []string{"staff"},
			want:    []string{"claims:create", "overtime:create"},
			notWant: []string{"claims:approve", "rates:write", "users:read:all"},
		},
		{
			name:    "manager inherits staff",
			roles:   []string{"manager"},
			want:    []string{"claims:approve", "claims:create"},
			notWant: []string{"payments:process", "users:read:all"},
		},
		{
			name:    "finance alone also grants staff and manager sets",
			roles:   []string{"finance"},
			want:    []string{"payments:process", "claims:approve", "claims:create"},
			notWant: []string{"users:read:all", "system:admin"},
		},
		{
			name:    "admin inherits everything below",
			roles:   []string{"admin"},
			want:    []string{"users:read:all", "payments:process", "claims:approve", "claims:create"},
			notWant: []string{"system:admin"},
		},
		{
			name:    "multiple roles use the highest level",
			roles:   []string{"staff", "finance"},
			want:    []string{"payments:process", "claims:approve"},
			notWant: []string{"rates:write"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, perm := range tc.want {
				if !HasPermission(tc.roles, perm) {
					t.Errorf("roles %v should hold %q", tc.roles, perm)
				}
			}
			for _, perm := range tc.notWant {
				if HasPermission(tc.roles, perm) {
					t.Errorf("roles %v should not hold %q", tc.roles, perm)
				}
			}
		})
	}
}

func TestEmptyAndUnknownRolesFailClosed(t *testing.T) {
	if HasPermission(nil, "claims:read") {
		t.Error("empty role set should grant nothing")
	}
	if HasPermission([]string{"intern"}, "claims:read") {
		t.Error("unknown role should grant nothing")
	}
	if HasRole(nil, RoleStaff) {
		t.Error("empty role set should hold no role")
	}
	if HasRole([]string{"staff"}, Role("ghost")) {
		t.Error("unknown target role should never match")
	}
}

func TestHasRoleHierarchy(t *testing.T) {
	testCases := []struct {
		name   string
		roles  []string
		target Role
		want   bool
	}{
		{"direct membership", []string{"staff"}, RoleStaff, true},
		{"superadmin implies every role", []string{"superadmin"}, RoleFinance, true},
		{"higher level satisfies lower target", []string{"admin"}, RoleManager, true},
		{"lower level never satisfies higher target", []string{"manager"}, RoleAdmin, false},
		{"finance satisfies manager via level", []string{"finance"}, RoleManager, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasRole(tc.roles, tc.target); got != tc.want {
				t.Errorf("HasRole(%v, %s) = %v, want %v", tc.roles, tc.target, got, tc.want)
			}
		})
	}
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	roles := []string{"manager"}

	if !HasAnyPermission(roles, "rates:write", "claims:approve") {
		t.Error("manager should match at least claims:approve")
	}
	if HasAllPermissions(roles, "claims:approve", "rates:write") {
		t.Error("manager should not hold rates:write")
	}
	if !HasAllPermissions(roles, "claims:approve", "claims:create") {
		t.Error("manager should hold both own and inherited grants")
	}
	if HasAnyPermission(roles) {
		t.Error("empty permission list should never match")
	}
}
