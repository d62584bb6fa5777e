package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/application"
	"github.com/quantgov/mrm/internal/domain/models"
	domainservice "github.com/quantgov/mrm/internal/domain/service"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/tests/fakes"
)

type tieringFixture struct {
	modelRepo   *fakes.InMemoryModelRepository
	tieringRepo *fakes.InMemoryTieringRepository
	audit       *fakes.RecordingAuditService
	svc         *TieringAppService
}

func newTieringFixture(t *testing.T) *tieringFixture {
	t.Helper()
	tieringRepo := fakes.NewInMemoryTieringRepository()
	modelRepo := fakes.NewInMemoryModelRepository(tieringRepo)
	audit := fakes.NewRecordingAuditService()
	rubrics := application.NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())
	svc := NewTieringAppService(
		modelRepo,
		tieringRepo,
		domainservice.NewTieringEngine(),
		rubrics,
		nil,
		audit,
		nil,
		logger.NewNoopLogger(),
	)
	return &tieringFixture{
		modelRepo:   modelRepo,
		tieringRepo: tieringRepo,
		audit:       audit,
		svc:         svc,
	}
}

func highRiskModel() *models.Model {
	return &models.Model{
		ModelID:               "credit-scorer-v4",
		ModelName:             "Credit Scorer v4",
		ModelType:             models.ModelTypeML,
		DecisionCriticality:   models.CriticalityHigh,
		DataSensitivity:       models.SensitivityRegulatedPII,
		AutomationLevel:       models.AutomationFullyAutomated,
		RegulatoryMateriality: models.MaterialityHigh,
		CreatedAt:             time.Now().UTC(),
	}
}

func TestPerformTiering(t *testing.T) {
	fx := newTieringFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.modelRepo.Save(ctx, highRiskModel()))

	record, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)

	assert.NotEmpty(t, record.TieringID)
	assert.Equal(t, "credit-scorer-v4", record.ModelID)
	assert.InDelta(t, 85.0, record.Score, 0.001)
	assert.Equal(t, "Tier 1", record.Tier.Label)
	assert.NotEmpty(t, record.Rationale)
	assert.NotEmpty(t, record.Controls)
	assert.False(t, record.Timestamp.IsZero())

	events := fx.audit.Events()
	require.Len(t, events, 1)
	assert.Equal(t, constants.AuditEventTieringRun, events[0].EventType)
	assert.Equal(t, "credit-scorer-v4", events[0].SubjectID)
}

func TestPerformTieringAppendsOnEveryRun(t *testing.T) {
	fx := newTieringFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.modelRepo.Save(ctx, highRiskModel()))

	first, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)
	second, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)

	assert.NotEqual(t, first.TieringID, second.TieringID)
	assert.Equal(t, first.Score, second.Score)

	history, err := fx.svc.GetTieringHistory(ctx, "credit-scorer-v4")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPerformTieringUnknownModel(t *testing.T) {
	fx := newTieringFixture(t)

	_, err := fx.svc.PerformTiering(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestPerformTieringPersistenceFailure(t *testing.T) {
	fx := newTieringFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.modelRepo.Save(ctx, highRiskModel()))
	fx.tieringRepo.SaveErr = errors.ErrPersistenceFailure("save tiering record", assert.AnError)

	_, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	assert.True(t, errors.IsPersistence(err))
	assert.Empty(t, fx.audit.Events())
}

func TestGetLatestTiering(t *testing.T) {
	fx := newTieringFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.modelRepo.Save(ctx, highRiskModel()))

	_, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)
	second, err := fx.svc.PerformTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)

	latest, err := fx.svc.GetLatestTiering(ctx, "credit-scorer-v4")
	require.NoError(t, err)
	assert.Equal(t, second.TieringID, latest.TieringID)
}

func TestGetLatestTieringNeverTiered(t *testing.T) {
	fx := newTieringFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.modelRepo.Save(ctx, highRiskModel()))

	_, err := fx.svc.GetLatestTiering(ctx, "credit-scorer-v4")
	assert.True(t, errors.IsNotFound(err))
}

func TestGetLatestTieringUnknownModel(t *testing.T) {
	fx := newTieringFixture(t)

	_, err := fx.svc.GetLatestTiering(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestGetTieringHistoryUnknownModel(t *testing.T) {
	fx := newTieringFixture(t)

	_, err := fx.svc.GetTieringHistory(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}
