package events

import (
	"encoding/json"
	"testing"
)

func TestNewAuditEvent(t *testing.T) {
	event := NewAuditEvent(ClaimCreated, "user-1", "create", "claim", "claim-9", "Car trip HQ to Plant 2, total 45.50")

	if event.Type != ClaimCreated {
		t.Errorf("Type = %s, want %s", event.Type, ClaimCreated)
	}
	if event.ID == "" || event.Timestamp == 0 {
		t.Error("ID and Timestamp must be populated")
	}
	if event.TargetKind != "claim" || event.TargetID != "claim-9" {
		t.Errorf("target = %s/%s, want claim/claim-9", event.TargetKind, event.TargetID)
	}

	raw, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if decoded["type"] != "claim.created" {
		t.Errorf("wire type = %v, want claim.created", decoded["type"])
	}
	if decoded["actor_id"] != "user-1" {
		t.Errorf("wire actor_id = %v, want user-1", decoded["actor_id"])
	}
}

// Every lifecycle step a service audits has a distinct wire name, so a
// consumer can route on type alone.
func TestEventTypesAreDistinct(t *testing.T) {
	types := []EventType{
		ClaimCreated, ClaimSubmitted, ClaimApproved, ClaimRejected, ClaimDeleted,
		OvertimeCreated, OvertimeApproved, OvertimeRejected,
		DocumentPaid, RateCreated,
	}
	seen := make(map[EventType]bool, len(types))
	for _, et := range types {
		if seen[et] {
			t.Errorf("duplicate event type %s", et)
		}
		seen[et] = true
	}
}
