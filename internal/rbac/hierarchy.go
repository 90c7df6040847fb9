package rbac

// Role is a named capability tier. The set is closed: roles, their levels
// and their permission grants are fixed at compile time, and inheritance is
// driven by the level tables below instead of chained role references.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleManager    Role = "manager"
	RoleFinance    Role = "finance"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// roleLevels orders the hierarchy. A higher level inherits every permission
// granted to lower levels.
var roleLevels = map[Role]int{
	RoleStaff:      1,
	RoleManager:    2,
	RoleFinance:    3,
	RoleAdmin:      4,
	RoleSuperadmin: 5,
}

// rolePermissions lists only the permissions each role grants on its own;
// inherited grants come from the resolver, not from these sets.
var rolePermissions = map[Role][]string{
	RoleStaff: {
		"claims:create",
		"claims:read",
		"claims:update",
		"claims:delete",
		"overtime:create",
		"overtime:read",
		"profile:read",
		"profile:update",
	},
	RoleManager: {
		"claims:read:all",
		"claims:approve",
		"overtime:read:all",
		"overtime:approve",
		"reports:read",
	},
	RoleFinance: {
		"payments:process",
		"rates:read",
		"reports:export",
	},
	RoleAdmin: {
		"users:read:all",
		"users:create",
		"users:update",
		"users:delete",
		"roles:assign",
		"rates:write",
		"rates:update",
		"audit:read",
	},
	RoleSuperadmin: {
		"system:admin",
	},
}

// Level returns the hierarchy level of a role, or 0 for unknown roles so
// they never outrank anything.
func Level(role Role) int {
	return roleLevels[role]
}

// Permissions returns the role's own grant set. Unknown roles grant nothing.
func Permissions(role Role) []string {
	return rolePermissions[role]
}

// AllRoles lists every defined role in ascending hierarchy order.
func AllRoles() []Role {
	return []Role{RoleStaff, RoleManager, RoleFinance, RoleAdmin, RoleSuperadmin}
}

// IsKnown reports whether the role is part of the closed set.
func IsKnown(role Role) bool {
	_, ok := roleLevels[role]
	return ok
}
