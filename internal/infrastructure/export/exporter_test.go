package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/application"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/tests/fakes"
)

func seedData(t *testing.T) (*fakes.InMemoryModelRepository, *fakes.InMemoryTieringRepository) {
	t.Helper()
	tieringRepo := fakes.NewInMemoryTieringRepository()
	modelRepo := fakes.NewInMemoryModelRepository(tieringRepo)
	ctx := context.Background()

	require.NoError(t, modelRepo.Save(ctx, &models.Model{
		ModelID:   "credit-scorer-v4",
		ModelName: "Credit Scorer v4",
		CreatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, modelRepo.Save(ctx, &models.Model{
		ModelID:   "churn-predictor",
		ModelName: "Churn Predictor",
		CreatedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, tieringRepo.Save(ctx, &models.TieringRecord{
		TieringID: "t-1",
		ModelID:   "credit-scorer-v4",
		Timestamp: time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC),
		Score:     31,
		Tier:      models.Tier{Rank: 1, Label: "Tier 1"},
		Rationale: "high criticality",
		Controls:  []string{"Independent validation required"},
	}))
	return modelRepo, tieringRepo
}

func newExporter(t *testing.T, dir string) *Exporter {
	t.Helper()
	modelRepo, tieringRepo := seedData(t)
	rubrics := application.NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())
	return NewExporter(modelRepo, tieringRepo, rubrics, dir, logger.NewNoopLogger())
}

func TestExporterRunProducesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	exporter := newExporter(t, dir)

	bundle, err := exporter.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.RunID)
	assert.Equal(t, filepath.Join(dir, bundle.RunID), bundle.Dir)

	for _, name := range []string{
		FileModelInventory,
		FileRiskTiering,
		FileControlsChecklist,
		FileExecutiveSummary,
		FileConfigSnapshot,
		FileEvidenceManifest,
	} {
		_, err := os.Stat(filepath.Join(bundle.Dir, name))
		assert.NoError(t, err, name)
	}
}

func TestExporterManifestHashesMatchContent(t *testing.T) {
	exporter := newExporter(t, t.TempDir())

	bundle, err := exporter.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(bundle.Dir, FileEvidenceManifest))
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, bundle.RunID, manifest.RunID)
	require.Len(t, manifest.GeneratedFiles, 5)

	for _, artifact := range manifest.GeneratedFiles {
		content, err := os.ReadFile(filepath.Join(bundle.Dir, artifact.Name))
		require.NoError(t, err, artifact.Name)
		sum := sha256.Sum256(content)
		assert.Equal(t, hex.EncodeToString(sum[:]), artifact.SHA256, artifact.Name)
		assert.Equal(t, int64(len(content)), artifact.SizeBytes, artifact.Name)
	}
}

func TestExporterInventoryCSV(t *testing.T) {
	exporter := newExporter(t, t.TempDir())

	bundle, err := exporter.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(bundle.Dir, FileModelInventory))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "model_id,model_name,risk_score,risk_tier,created_at,tiering_timestamp", lines[0])

	// Newest registration first; the untiered model has empty tiering fields.
	assert.True(t, strings.HasPrefix(lines[1], "churn-predictor,Churn Predictor,,,"))
	assert.Contains(t, lines[2], "credit-scorer-v4,Credit Scorer v4,31,Tier 1,")
}

func TestExporterExecutiveSummaryCounts(t *testing.T) {
	exporter := newExporter(t, t.TempDir())

	bundle, err := exporter.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(bundle.Dir, FileExecutiveSummary))
	require.NoError(t, err)
	summary := string(data)
	assert.Contains(t, summary, "Run "+bundle.RunID)
	assert.Contains(t, summary, "- Total Models Onboarded: 2")
	assert.Contains(t, summary, "- Models in Tier 1: 1")
}

func TestExporterConfigSnapshotRoundTrips(t *testing.T) {
	exporter := newExporter(t, t.TempDir())

	bundle, err := exporter.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(bundle.Dir, FileConfigSnapshot))
	require.NoError(t, err)

	var snapshot models.Rubric
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.NoError(t, snapshot.Validate())
	assert.Equal(t, models.DefaultRubric().ControlMapping, snapshot.ControlMapping)
}
