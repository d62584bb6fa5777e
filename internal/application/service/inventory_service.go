package service

import (
	"context"
	"time"

	"github.com/quantgov/mrm/internal/application/dto"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/internal/infrastructure/monitoring"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/pkg/utils"
)

// InventoryAppService implements the model inventory use cases:
// registration, lookup, and the dashboard listing.
type InventoryAppService struct {
	modelRepo repository.ModelRepository
	tiering   *TieringAppService
	audit     domainservice.AuditService
	metrics   *monitoring.Metrics
	log       logger.Logger
}

// NewInventoryAppService wires the inventory use case.
func NewInventoryAppService(
	modelRepo repository.ModelRepository,
	tiering *TieringAppService,
	audit domainservice.AuditService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *InventoryAppService {
	return &InventoryAppService{
		modelRepo: modelRepo,
		tiering:   tiering,
		audit:     audit,
		metrics:   metrics,
		log:       log.WithComponent("inventory_service"),
	}
}

// RegisterModel validates the request, stores the model, and runs the
// initial tiering assessment. A caller-supplied model_id that collides
// with an existing record is a duplicate_id error; nothing is overwritten.
// When the initial assessment fails the model stays registered and the
// error is returned alongside it.
func (s *InventoryAppService) RegisterModel(ctx context.Context, req *dto.RegisterModelRequest) (*models.Model, *models.TieringRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	model := req.ToDomain()
	if model.ModelID == "" {
		model.ModelID = utils.NewID()
	}
	model.CreatedAt = time.Now().UTC()

	if err := s.modelRepo.Save(ctx, model); err != nil {
		return nil, nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordModelRegistration()
	}
	s.logAudit(ctx, model)

	s.log.Info(ctx, "model registered",
		logger.String("model_id", model.ModelID),
		logger.String("model_name", model.ModelName),
	)

	record, err := s.tiering.PerformTiering(ctx, model.ModelID)
	if err != nil {
		s.log.Error(ctx, "initial tiering run failed after registration", err,
			logger.String("model_id", model.ModelID))
		return model, nil, err
	}

	return model, record, nil
}

// GetModel returns the inventory record or a not_found error.
func (s *InventoryAppService) GetModel(ctx context.Context, modelID string) (*models.Model, error) {
	return s.modelRepo.FindByID(ctx, modelID)
}

// ListModels returns every registered model with its latest tiering
// result, newest registrations first. Models without a tiering run appear
// with nil score and tier.
func (s *InventoryAppService) ListModels(ctx context.Context) ([]dto.ModelSummary, error) {
	rows, err := s.modelRepo.ListWithLatestTiering(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ModelSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.NewModelSummary(row))
	}
	return summaries, nil
}

func (s *InventoryAppService) logAudit(ctx context.Context, model *models.Model) {
	if s.audit == nil {
		return
	}
	event := models.NewAuditEvent(constants.AuditEventModelRegistered, model.ModelID, "model added to inventory").
		WithMetadata(map[string]interface{}{
			"model_name": model.ModelName,
			"model_type": string(model.ModelType),
		})
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.log.Warn(ctx, "audit write failed", logger.Error(err))
	}
}
