// Package audit provides the governance audit trail sinks: the relational
// store used by default and the Kafka producer for deployments that stream
// events into a central pipeline. Either sink can be wrapped with an HMAC
// signer so stored events are tamper-evident.
package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/pkg/errors"
)

// GormAuditService stores audit events in the service database, alongside
// the inventory and tiering tables.
type GormAuditService struct {
	db *gorm.DB
}

// NewGormAuditService creates the database-backed AuditService.
func NewGormAuditService(db *gorm.DB) service.AuditService {
	return &GormAuditService{
		db: db,
	}
}

// LogEvent appends an audit event to the audit_events table.
func (s *GormAuditService) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return errors.ErrPersistenceFailure("save audit event", err)
	}
	return nil
}
