package rbac

import (
	"strings"
)

// PolicyRule guards a path prefix. Roles lists acceptable roles, Permissions
// must all be held, and AllowHierarchy switches the role check between
// hierarchy-aware matching and exact membership.
type PolicyRule struct {
	Prefix         string
	Roles          []Role
	Permissions    []string
	AllowHierarchy bool
}

type AccessPolicy struct {
	rules []PolicyRule
}

func NewAccessPolicy(rules []PolicyRule) *AccessPolicy {
	return &AccessPolicy{rules: rules}
}

// DefaultPolicy mirrors the portal's protected route surface.
func DefaultPolicy() *AccessPolicy {
	return NewAccessPolicy([]PolicyRule{
		{Prefix: "/protected/claims", Roles: []Role{RoleStaff}, Permissions: []string{"claims:read"}, AllowHierarchy: true},
		{Prefix: "/protected/claims/approvals", Roles: []Role{RoleManager}, Permissions: []string{"claims:approve"}, AllowHierarchy: true},
		{Prefix: "/protected/overtime", Roles: []Role{RoleStaff}, Permissions: []string{"overtime:read"}, AllowHierarchy: true},
		{Prefix: "/protected/overtime/approvals", Roles: []Role{RoleManager}, Permissions: []string{"overtime:approve"}, AllowHierarchy: true},
		{Prefix: "/protected/admin/rates", Roles: []Role{RoleFinance, RoleAdmin}, Permissions: []string{"rates:read"}, AllowHierarchy: true},
		{Prefix: "/protected/admin/users", Roles: []Role{RoleAdmin}, Permissions: []string{"users:read:all"}, AllowHierarchy: false},
	})
}

// CanAccess resolves the most specific rule for the path (longest matching
// prefix) and checks the caller's roles against it. Paths with no matching
// rule are public at this layer; unauthenticated rejection happens upstream.
func (p *AccessPolicy) CanAccess(roles []string, path string) bool {
	rule := p.match(path)
	if rule == nil {
		return true
	}

	if HasExactRole(roles, RoleSuperadmin) {
		return true
	}

	roleOK := len(rule.Roles) == 0
	for _, want := range rule.Roles {
		if rule.AllowHierarchy {
			if HasRole(roles, want) {
				roleOK = true
				break
			}
		} else if HasExactRole(roles, want) {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return false
	}

	return HasAllPermissions(roles, rule.Permissions...)
}

func (p *AccessPolicy) match(path string) *PolicyRule {
	var best *PolicyRule
	for i := range p.rules {
		rule := &p.rules[i]
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if best == nil || len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}
