package middleware

import (
	"log"
	"strings"

	"claimbot/internal/rbac"
	"claimbot/internal/service"
	"claimbot/internal/workflow"

	"github.com/gofiber/fiber/v3"
)

const (
	// Claim permissions
	CreateClaimPermission  = "claims:create"
	ReadClaimPermission    = "claims:read"
	ReadAllClaimPermission = "claims:read:all"
	UpdateClaimPermission  = "claims:update"
	DeleteClaimPermission  = "claims:delete"
	ApproveClaimPermission = "claims:approve"

	// Overtime permissions
	CreateOvertimePermission  = "overtime:create"
	ReadOvertimePermission    = "overtime:read"
	ReadAllOvertimePermission = "overtime:read:all"
	ApproveOvertimePermission = "overtime:approve"

	// Payment and rate permissions
	ProcessPaymentsPermission = "payments:process"
	ReadRatesPermission       = "rates:read"
	WriteRatesPermission      = "rates:write"
	UpdateRatesPermission     = "rates:update"

	// User administration permissions
	ReadAllUsersPermission = "users:read:all"
	UpdateUsersPermission  = "users:update"
	AssignRolesPermission  = "roles:assign"
)

const actorLocalKey = "actor"

// AuthRequired validates the bearer token, resolves the caller into a
// workflow actor and checks the route against the access policy before any
// handler runs.
func AuthRequired(jwtService *service.JWTService, policy *rbac.AccessPolicy) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid authorization header",
			})
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Printf("Token validation failed from %s: %v", c.IP(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if !policy.CanAccess(claims.Roles, c.Path()) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}

		c.Locals(actorLocalKey, workflow.Actor{
			ID:    claims.UserID,
			Roles: claims.Roles,
		})
		return c.Next()
	}
}

// PermissionRequired guards a single route with one permission token,
// honoring role inheritance.
func PermissionRequired(permission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if actor.ID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !rbac.HasPermission(actor.Roles, permission) {
			log.Printf("Permission %s denied for user %s on %s %s",
				permission, actor.ID, c.Method(), c.OriginalURL())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// RoleRequired guards a route by hierarchy level: any role at or above the
// target passes.
func RoleRequired(role rbac.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if actor.ID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		if !rbac.HasRole(actor.Roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// ActorFromCtx returns the authenticated actor stored by AuthRequired, or a
// zero actor when the route was reached unauthenticated.
func ActorFromCtx(c fiber.Ctx) workflow.Actor {
	actor, _ := c.Locals(actorLocalKey).(workflow.Actor)
	return actor
}
