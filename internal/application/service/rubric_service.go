package service

import (
	"context"

	"github.com/quantgov/mrm/internal/application"
	"github.com/quantgov/mrm/internal/domain/models"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/logger"
)

// RubricAppService exposes the rubric configuration use cases: reading
// the active rubric and replacing it wholesale. Partial edits are not
// supported; clients submit a complete rubric which is validated before
// it becomes active.
type RubricAppService struct {
	rubrics *application.RubricManager
	audit   domainservice.AuditService
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewRubricAppService wires the rubric use case.
func NewRubricAppService(
	rubrics *application.RubricManager,
	audit domainservice.AuditService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *RubricAppService {
	return &RubricAppService{
		rubrics: rubrics,
		audit:   audit,
		metrics: metrics,
		log:     log.WithComponent("rubric_service"),
	}
}

// ActiveRubric returns a snapshot of the current rubric.
func (s *RubricAppService) ActiveRubric() *models.Rubric {
	return s.rubrics.Active()
}

// Replace validates the candidate and makes it the active rubric. The
// previous rubric stays active when validation fails. Already-stored
// tiering records are never rescored; the new rubric only affects
// subsequent runs.
func (s *RubricAppService) Replace(ctx context.Context, candidate *models.Rubric, actor string) error {
	if err := s.rubrics.Replace(ctx, candidate); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordRubricUpdate()
	}
	if s.audit != nil {
		event := models.NewAuditEvent(constants.AuditEventRubricReplaced, "rubric", "active rubric replaced").
			WithActor(actor).
			WithMetadata(map[string]interface{}{
				"factors": len(candidate.Weights),
				"tiers":   len(candidate.Thresholds),
			})
		if err := s.audit.LogEvent(ctx, event); err != nil {
			s.log.Warn(ctx, "audit write failed", logger.Error(err))
		}
	}
	return nil
}
