package workflow

import (
	"errors"
	"testing"

	"claimbot/internal/apperr"
	"claimbot/internal/models"
)

var (
	owner    = Actor{ID: "u1", Roles: []string{"staff"}, SalaryVerified: true}
	otherer  = Actor{ID: "u2", Roles: []string{"staff"}, SalaryVerified: true}
	manager  = Actor{ID: "m1", Roles: []string{"manager"}}
	finance  = Actor{ID: "f1", Roles: []string{"finance"}}
	nobody   = Actor{ID: "x1", Roles: nil}
	unproven = Actor{ID: "u3", Roles: []string{"staff"}, SalaryVerified: false}
)

func TestInitialStatus(t *testing.T) {
	testCases := []struct {
		name    string
		kind    Kind
		actor   Actor
		want    models.Status
		wantErr error
	}{
		{"claim starts as draft", KindClaim, owner, models.StatusDraft, nil},
		{"overtime starts submitted", KindOvertime, owner, models.StatusSubmitted, nil},
		{"overtime needs salary verification", KindOvertime, unproven, "", apperr.ErrForbidden},
		{"roleless actor cannot create", KindClaim, nobody, "", apperr.ErrForbidden},
		{"manager can create via hierarchy", KindClaim, manager, models.StatusDraft, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := InitialStatus(tc.kind, tc.actor)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTransitionTable(t *testing.T) {
	testCases := []struct {
		name    string
		kind    Kind
		current models.Status
		action  Action
		actor   Actor
		ownerID string
		want    models.Status
		wantErr error
	}{
		{"owner submits draft", KindClaim, models.StatusDraft, ActionSubmit, owner, "u1", models.StatusSubmitted, nil},
		{"non-owner cannot submit", KindClaim, models.StatusDraft, ActionSubmit, otherer, "u1", "", apperr.ErrForbidden},
		{"cannot resubmit", KindClaim, models.StatusSubmitted, ActionSubmit, owner, "u1", "", apperr.ErrInvalidState},
		{"overtime has no submit step", KindOvertime, models.StatusSubmitted, ActionSubmit, owner, "u1", "", apperr.ErrInvalidState},

		{"manager approves", KindClaim, models.StatusSubmitted, ActionApprove, manager, "u1", models.StatusApproved, nil},
		{"finance rejects", KindOvertime, models.StatusSubmitted, ActionReject, finance, "u1", models.StatusRejected, nil},
		{"staff cannot approve", KindClaim, models.StatusSubmitted, ActionApprove, owner, "u1", "", apperr.ErrForbidden},
		{"approve on approved conflicts", KindClaim, models.StatusApproved, ActionApprove, manager, "u1", "", apperr.ErrInvalidState},
		{"no draft to approved shortcut", KindClaim, models.StatusDraft, ActionApprove, manager, "u1", "", apperr.ErrInvalidState},

		{"owner edits draft claim", KindClaim, models.StatusDraft, ActionUpdate, owner, "u1", models.StatusDraft, nil},
		{"owner cannot edit submitted claim", KindClaim, models.StatusSubmitted, ActionUpdate, owner, "u1", "", apperr.ErrInvalidState},
		{"non-owner staff cannot edit draft", KindClaim, models.StatusDraft, ActionUpdate, otherer, "u1", "", apperr.ErrForbidden},
		{"owner edits submitted overtime", KindOvertime, models.StatusSubmitted, ActionUpdate, owner, "u1", models.StatusSubmitted, nil},
		{"finance edits regardless of status", KindClaim, models.StatusApproved, ActionUpdate, finance, "u1", models.StatusApproved, nil},
		{"owner deletes draft", KindClaim, models.StatusDraft, ActionDelete, owner, "u1", models.StatusDraft, nil},
		{"non-owner staff cannot delete draft", KindClaim, models.StatusDraft, ActionDelete, otherer, "u1", "", apperr.ErrForbidden},
		{"finance deletes approved", KindOvertime, models.StatusApproved, ActionDelete, finance, "u1", models.StatusApproved, nil},

		{"payroll marks approved paid", KindClaim, models.StatusApproved, ActionMarkPaid, finance, "u1", models.StatusPaid, nil},
		{"cannot pay a submitted document", KindClaim, models.StatusSubmitted, ActionMarkPaid, finance, "u1", "", apperr.ErrInvalidState},
		{"manager cannot mark paid", KindClaim, models.StatusApproved, ActionMarkPaid, manager, "u1", "", apperr.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.kind, tc.current, tc.action, tc.actor, tc.ownerID)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("next status = %s, want %s", got, tc.want)
			}
		})
	}
}
