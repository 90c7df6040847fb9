package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	ClaimCreated     EventType = "claim.created"
	ClaimSubmitted   EventType = "claim.submitted"
	ClaimApproved    EventType = "claim.approved"
	ClaimRejected    EventType = "claim.rejected"
	ClaimDeleted     EventType = "claim.deleted"
	OvertimeCreated  EventType = "overtime.created"
	OvertimeApproved EventType = "overtime.approved"
	OvertimeRejected EventType = "overtime.rejected"
	DocumentPaid     EventType = "document.paid"
	RateCreated      EventType = "rate.created"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

// AuditEvent is the single audit record shape: who did what to which
// document, with a human-readable detail line. Retention and storage are
// the consumer's concern.
type AuditEvent struct {
	BaseEvent
	ActorID    string `json:"actor_id"`
	Action     string `json:"action"`
	TargetKind string `json:"target_kind"`
	TargetID   string `json:"target_id"`
	Detail     string `json:"detail"`
}

func NewAuditEvent(eventType EventType, actorID, action, targetKind, targetID, detail string) *AuditEvent {
	return &AuditEvent{
		BaseEvent: BaseEvent{
			ID:        generateEventID(),
			Type:      eventType,
			Timestamp: time.Now().Unix(),
			Version:   "1.0",
		},
		ActorID:    actorID,
		Action:     action,
		TargetKind: targetKind,
		TargetID:   targetID,
		Detail:     detail,
	}
}

func (e *AuditEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PaidNotice is what the payroll system sends when it completes a payment
// run for an approved document.
type PaidNotice struct {
	TargetKind  string `json:"target_kind"` // claim | overtime
	TargetID    string `json:"target_id"`
	ProcessedBy string `json:"processed_by"`
	Reference   string `json:"reference"`
}

func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
