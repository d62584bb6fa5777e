package fakes

import (
	"context"
	"sync"

	"github.com/quantgov/mrm/internal/domain/models"
)

// RecordingAuditService captures logged audit events for assertions.
type RecordingAuditService struct {
	mu     sync.Mutex
	events []models.AuditEvent

	// LogErr, when set, is returned by LogEvent to simulate sink failure.
	LogErr error
}

// NewRecordingAuditService creates an empty audit trail fake.
func NewRecordingAuditService() *RecordingAuditService {
	return &RecordingAuditService{}
}

func (s *RecordingAuditService) LogEvent(_ context.Context, event *models.AuditEvent) error {
	if s.LogErr != nil {
		return s.LogErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// Events returns a copy of the captured events in log order.
func (s *RecordingAuditService) Events() []models.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}
