package workflow

import (
	"fmt"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
	"claimbot/internal/rbac"
)

// Kind selects which document family a transition applies to. Claims start
// life as drafts; overtime requests are born submitted.
type Kind string

const (
	KindClaim    Kind = "claim"
	KindOvertime Kind = "overtime"
)

type Action string

const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionMarkPaid Action = "mark_paid"
)

// Actor is the authenticated party attempting a transition, passed in
// explicitly on every call — the engine never consults ambient session
// state.
type Actor struct {
	ID             string
	Roles          []string
	SalaryVerified bool
}

func (a Actor) owns(ownerID string) bool {
	return a.ID != "" && a.ID == ownerID
}

func (a Actor) elevated() bool {
	return rbac.HasAnyRole(a.Roles, rbac.RoleFinance, rbac.RoleAdmin)
}

func (a Actor) canDecide() bool {
	return rbac.HasAnyRole(a.Roles, rbac.RoleManager, rbac.RoleFinance, rbac.RoleAdmin, rbac.RoleSuperadmin)
}

// InitialStatus validates a create action and returns the status a new
// document enters with. Overtime creation requires the actor's salary
// verification to have passed, since payout math needs trusted salary data.
func InitialStatus(kind Kind, actor Actor) (models.Status, error) {
	if !rbac.HasRole(actor.Roles, rbac.RoleStaff) {
		return "", fmt.Errorf("%w: staff role required to create a %s", apperr.ErrForbidden, kind)
	}
	switch kind {
	case KindClaim:
		return models.StatusDraft, nil
	case KindOvertime:
		if !actor.SalaryVerified {
			return "", fmt.Errorf("%w: salary verification must be completed before submitting overtime", apperr.ErrForbidden)
		}
		return models.StatusSubmitted, nil
	}
	return "", fmt.Errorf("%w: unknown document kind %q", apperr.ErrValidation, kind)
}

// editableStatus is the status in which the owner may still change or
// delete the document.
func editableStatus(kind Kind) models.Status {
	if kind == KindClaim {
		return models.StatusDraft
	}
	return models.StatusSubmitted
}

// Transition applies one lifecycle action to the current persisted status
// and returns the next status. Every guard failure is a typed error:
// missing capability or ownership is Forbidden, an action fired from a
// status that does not permit it is InvalidState — never a silent no-op.
// Callers must pass the freshly re-read status, not one fetched earlier in
// the request.
func Transition(kind Kind, current models.Status, action Action, actor Actor, ownerID string) (models.Status, error) {
	switch action {
	case ActionSubmit:
		if kind != KindClaim {
			return "", fmt.Errorf("%w: %s documents are submitted on creation", apperr.ErrInvalidState, kind)
		}
		if !actor.owns(ownerID) {
			return "", fmt.Errorf("%w: only the owner may submit this claim", apperr.ErrForbidden)
		}
		if current != models.StatusDraft {
			return "", fmt.Errorf("%w: cannot submit a claim in status %q", apperr.ErrInvalidState, current)
		}
		return models.StatusSubmitted, nil

	case ActionApprove, ActionReject:
		if !actor.canDecide() {
			return "", fmt.Errorf("%w: approver role required", apperr.ErrForbidden)
		}
		if current != models.StatusSubmitted {
			return "", fmt.Errorf("%w: cannot decide a %s in status %q", apperr.ErrInvalidState, kind, current)
		}
		if action == ActionApprove {
			return models.StatusApproved, nil
		}
		return models.StatusRejected, nil

	case ActionUpdate, ActionDelete:
		if actor.elevated() {
			return current, nil
		}
		if !actor.owns(ownerID) {
			return "", fmt.Errorf("%w: only the owner may %s this %s", apperr.ErrForbidden, action, kind)
		}
		if current != editableStatus(kind) {
			return "", fmt.Errorf("%w: a %s can only be changed while %s", apperr.ErrInvalidState, kind, editableStatus(kind))
		}
		return current, nil

	case ActionMarkPaid:
		if !rbac.HasPermission(actor.Roles, "payments:process") {
			return "", fmt.Errorf("%w: payments:process permission required", apperr.ErrForbidden)
		}
		if current != models.StatusApproved {
			return "", fmt.Errorf("%w: only approved documents can be marked paid, current status is %q", apperr.ErrInvalidState, current)
		}
		return models.StatusPaid, nil
	}

	return "", fmt.Errorf("%w: unknown action %q", apperr.ErrValidation, action)
}
