package service

import (
	"context"

	"github.com/quantgov/mrm/internal/domain/models"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/export"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/logger"
)

// ExportAppService runs evidence exports and records them on the audit
// trail.
type ExportAppService struct {
	exporter *export.Exporter
	audit    domainservice.AuditService
	metrics  *monitoring.Metrics
	log      logger.Logger
}

// NewExportAppService wires the export use case.
func NewExportAppService(
	exporter *export.Exporter,
	audit domainservice.AuditService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *ExportAppService {
	return &ExportAppService{
		exporter: exporter,
		audit:    audit,
		metrics:  metrics,
		log:      log.WithComponent("export_service"),
	}
}

// RunExport produces a new evidence bundle.
func (s *ExportAppService) RunExport(ctx context.Context, actor string) (*export.Bundle, error) {
	bundle, err := s.exporter.Run(ctx)
	if err != nil {
		s.recordRun("failure")
		return nil, err
	}

	s.recordRun("success")
	s.logAudit(ctx, bundle, actor)
	return bundle, nil
}

func (s *ExportAppService) recordRun(result string) {
	if s.metrics != nil {
		s.metrics.RecordExportRun(result)
	}
}

func (s *ExportAppService) logAudit(ctx context.Context, bundle *export.Bundle, actor string) {
	if s.audit == nil {
		return
	}
	event := models.NewAuditEvent(constants.AuditEventExportRun, bundle.RunID, "evidence bundle exported").
		WithActor(actor).
		WithMetadata(map[string]interface{}{
			"dir":       bundle.Dir,
			"artifacts": len(bundle.Artifacts),
		})
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.log.Warn(ctx, "audit write failed", logger.Error(err))
	}
}
