package rbac

import (
	"slices"
)

// ResolvePermissions computes the effective permission set for a held role
// collection. Superadmin collapses to the union of every defined role's
// grants. Otherwise each held role contributes its own set, and every role
// whose level sits strictly below the highest held level contributes its
// set too — inheritance follows the maximum held level, not per-role
// chains, so holding finance alone also grants the staff and manager sets.
func ResolvePermissions(roles []string) map[string]struct{} {
	granted := make(map[string]struct{})
	if len(roles) == 0 {
		return granted
	}

	if slices.Contains(roles, string(RoleSuperadmin)) {
		for _, r := range AllRoles() {
			for _, p := range Permissions(r) {
				granted[p] = struct{}{}
			}
		}
		return granted
	}

	maxLevel := 0
	for _, held := range roles {
		role := Role(held)
		if !IsKnown(role) {
			continue
		}
		if lvl := Level(role); lvl > maxLevel {
			maxLevel = lvl
		}
		for _, p := range Permissions(role) {
			granted[p] = struct{}{}
		}
	}

	for _, r := range AllRoles() {
		if Level(r) < maxLevel {
			for _, p := range Permissions(r) {
				granted[p] = struct{}{}
			}
		}
	}

	return granted
}

func HasPermission(roles []string, permission string) bool {
	_, ok := ResolvePermissions(roles)[permission]
	return ok
}

func HasAnyPermission(roles []string, permissions ...string) bool {
	granted := ResolvePermissions(roles)
	for _, p := range permissions {
		if _, ok := granted[p]; ok {
			return true
		}
	}
	return false
}

func HasAllPermissions(roles []string, permissions ...string) bool {
	granted := ResolvePermissions(roles)
	for _, p := range permissions {
		if _, ok := granted[p]; !ok {
			return false
		}
	}
	return true
}

// HasRole reports whether the collection satisfies the target role: held
// directly, held via superadmin, or held via any known role whose level is
// at least the target's level.
func HasRole(roles []string, target Role) bool {
	if !IsKnown(target) {
		return false
	}
	for _, held := range roles {
		role := Role(held)
		if role == target || role == RoleSuperadmin {
			return true
		}
		if IsKnown(role) && Level(role) >= Level(target) {
			return true
		}
	}
	return false
}

func HasAnyRole(roles []string, targets ...Role) bool {
	for _, t := range targets {
		if HasRole(roles, t) {
			return true
		}
	}
	return false
}

// HasExactRole checks direct membership only, with no hierarchy allowance.
func HasExactRole(roles []string, target Role) bool {
	return slices.Contains(roles, string(target))
}
