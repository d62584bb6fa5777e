// Package service implements the application use cases: registering models,
// running tiering assessments, managing the rubric, and exporting evidence.
package service

import (
	"context"
	"time"

	"github.com/quantgov/mrm/internal/application"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/cache"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/pkg/utils"
)

// TieringAppService orchestrates risk-tiering runs: it loads the model,
// scores it against the active rubric, classifies, renders the rationale,
// resolves controls, and appends the immutable result record.
type TieringAppService struct {
	modelRepo   repository.ModelRepository
	tieringRepo repository.TieringRepository
	engine      domainservice.TieringEngine
	rubrics     *application.RubricManager
	cache       cache.TieringCache
	audit       domainservice.AuditService
	metrics     *monitoring.Metrics
	log         logger.Logger
}

// NewTieringAppService wires the tiering use case. Cache, audit, and
// metrics are optional; a nil value disables that concern.
func NewTieringAppService(
	modelRepo repository.ModelRepository,
	tieringRepo repository.TieringRepository,
	engine domainservice.TieringEngine,
	rubrics *application.RubricManager,
	tieringCache cache.TieringCache,
	audit domainservice.AuditService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *TieringAppService {
	return &TieringAppService{
		modelRepo:   modelRepo,
		tieringRepo: tieringRepo,
		engine:      engine,
		rubrics:     rubrics,
		cache:       tieringCache,
		audit:       audit,
		metrics:     metrics,
		log:         log.WithComponent("tiering_service"),
	}
}

// PerformTiering runs a full assessment for the model and stores a new
// record. Every call appends; identical inputs produce distinct records
// with distinct identifiers. The rubric is snapshotted once at the start
// so a concurrent rubric edit cannot produce a mixed result.
func (s *TieringAppService) PerformTiering(ctx context.Context, modelID string) (*models.TieringRecord, error) {
	start := time.Now()

	model, err := s.modelRepo.FindByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	rubric := s.rubrics.Active()
	score, breakdown := s.engine.ComputeScore(model, rubric)
	tier := s.engine.AssignTier(score, rubric)
	rationale := s.engine.RenderRationale(model, score, tier, breakdown, rubric)
	controls := s.engine.ResolveControls(tier, rubric)

	record := &models.TieringRecord{
		TieringID: utils.NewID(),
		ModelID:   modelID,
		Timestamp: time.Now().UTC(),
		Score:     score,
		Tier:      tier,
		Rationale: rationale,
		Controls:  controls,
	}

	if err := s.tieringRepo.Save(ctx, record); err != nil {
		s.recordRun(tier.Label, "failure", time.Since(start))
		return nil, err
	}

	s.refreshCache(ctx, record)
	s.logAudit(ctx, constants.AuditEventTieringRun, modelID, record)
	s.recordRun(tier.Label, "success", time.Since(start))

	s.log.Info(ctx, "tiering run stored",
		logger.String("model_id", modelID),
		logger.String("tiering_id", record.TieringID),
		logger.Float64("risk_score", score),
		logger.String("risk_tier", tier.Label),
	)

	return record, nil
}

// GetLatestTiering returns the model's most recent assessment, consulting
// the cache before storage. A model with no history yields a not_found
// error; an unknown model does too, via the repository.
func (s *TieringAppService) GetLatestTiering(ctx context.Context, modelID string) (*models.TieringRecord, error) {
	if s.cache != nil {
		if record, err := s.cache.GetLatest(ctx, modelID); err == nil && record != nil {
			return record, nil
		} else if err != nil {
			s.log.Warn(ctx, "latest-tiering cache read failed", logger.Error(err))
		}
	}

	record, err := s.tieringRepo.FindLatestByModelID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Distinguish "model unknown" from "model known, never tiered".
		if _, err := s.modelRepo.FindByID(ctx, modelID); err != nil {
			return nil, err
		}
		return nil, errors.ErrTieringNotFound(modelID)
	}

	s.refreshCache(ctx, record)
	return record, nil
}

// GetTieringHistory returns the model's full assessment history, newest
// first. The model must exist.
func (s *TieringAppService) GetTieringHistory(ctx context.Context, modelID string) ([]models.TieringRecord, error) {
	if _, err := s.modelRepo.FindByID(ctx, modelID); err != nil {
		return nil, err
	}
	return s.tieringRepo.FindAllByModelID(ctx, modelID)
}

func (s *TieringAppService) refreshCache(ctx context.Context, record *models.TieringRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetLatest(ctx, record, constants.DefaultLatestTieringTTL); err != nil {
		s.log.Warn(ctx, "latest-tiering cache write failed", logger.Error(err))
	}
}

func (s *TieringAppService) logAudit(ctx context.Context, eventType constants.AuditEventType, modelID string, record *models.TieringRecord) {
	if s.audit == nil {
		return
	}
	event := models.NewAuditEvent(eventType, modelID, "risk tiering run stored").
		WithMetadata(map[string]interface{}{
			"tiering_id": record.TieringID,
			"risk_score": record.Score,
			"risk_tier":  record.Tier.Label,
		})
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.log.Warn(ctx, "audit write failed", logger.Error(err))
	}
}

func (s *TieringAppService) recordRun(tierLabel, result string, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTieringRun(tierLabel, result, duration)
}
