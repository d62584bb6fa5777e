package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/quantgov/mrm/pkg/constants"
)

// AuditEvent represents a single governance audit trail entry.
type AuditEvent struct {
	EventID   string                   `json:"event_id" gorm:"primaryKey;column:event_id"`
	EventType constants.AuditEventType `json:"event_type" gorm:"column:event_type;index"`
	SubjectID string                   `json:"subject_id" gorm:"column:subject_id;index"`
	Actor     string                   `json:"actor" gorm:"column:actor"`
	Result    string                   `json:"result" gorm:"column:result"`
	Message   string                   `json:"message" gorm:"column:message"`
	TraceID   string                   `json:"trace_id,omitempty" gorm:"column:trace_id"`
	Metadata  json.RawMessage          `json:"metadata,omitempty" gorm:"column:metadata"`
	Signature string                   `json:"signature,omitempty" gorm:"column:signature"`
	Timestamp time.Time                `json:"timestamp" gorm:"column:timestamp;index"`
}

// TableName sets the audit trail table name for GORM.
func (AuditEvent) TableName() string {
	return "audit_events"
}

// NewAuditEvent creates a new audit event for the given subject.
func NewAuditEvent(eventType constants.AuditEventType, subjectID, message string) *AuditEvent {
	return &AuditEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		SubjectID: subjectID,
		Result:    "success",
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithActor sets the principal that performed the action.
func (a *AuditEvent) WithActor(actor string) *AuditEvent {
	a.Actor = actor
	return a
}

// WithResult sets the event outcome, "success" or "failure".
func (a *AuditEvent) WithResult(result string) *AuditEvent {
	a.Result = result
	return a
}

// WithTrace sets the distributed trace identifier.
func (a *AuditEvent) WithTrace(traceID string) *AuditEvent {
	a.TraceID = traceID
	return a
}

// WithMetadata attaches event-specific data as JSON.
func (a *AuditEvent) WithMetadata(data interface{}) *AuditEvent {
	if jsonData, err := json.Marshal(data); err == nil {
		a.Metadata = jsonData
	}
	return a
}
