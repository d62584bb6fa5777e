// Package export produces governance evidence bundles: point-in-time
// artifacts of the model inventory, tiering results, and the rubric that
// produced them, sealed by a manifest of content hashes.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantgov/mrm/internal/application"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
	"github.com/quantgov/mrm/pkg/logger"
	"github.com/quantgov/mrm/pkg/utils"
)

// Artifact names within a bundle directory.
const (
	FileModelInventory    = "model_inventory.csv"
	FileRiskTiering       = "risk_tiering.json"
	FileControlsChecklist = "required_controls_checklist.json"
	FileExecutiveSummary  = "executive_summary.md"
	FileConfigSnapshot    = "config_snapshot.json"
	FileEvidenceManifest  = "evidence_manifest.json"
)

// Artifact describes one generated file, with its content hash for
// tamper-evidence.
type Artifact struct {
	Name      string `json:"name"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// Manifest seals a bundle: it lists every artifact with its hash and is
// always written last.
type Manifest struct {
	RunID          string     `json:"run_id"`
	Timestamp      time.Time  `json:"timestamp"`
	GeneratedFiles []Artifact `json:"generated_files"`
}

// Bundle is the result of one export run.
type Bundle struct {
	RunID     string
	Dir       string
	Artifacts []Artifact
}

// Exporter writes evidence bundles under the configured output directory.
// Each run gets its own subdirectory named by the run id.
type Exporter struct {
	modelRepo   repository.ModelRepository
	tieringRepo repository.TieringRepository
	rubrics     *application.RubricManager
	outputDir   string
	log         logger.Logger
}

// NewExporter creates an Exporter rooted at outputDir.
func NewExporter(
	modelRepo repository.ModelRepository,
	tieringRepo repository.TieringRepository,
	rubrics *application.RubricManager,
	outputDir string,
	log logger.Logger,
) *Exporter {
	return &Exporter{
		modelRepo:   modelRepo,
		tieringRepo: tieringRepo,
		rubrics:     rubrics,
		outputDir:   outputDir,
		log:         log.WithComponent("exporter"),
	}
}

// Run produces a complete evidence bundle. Data is read once up front so all
// artifacts describe the same snapshot; the independent artifacts are then
// written concurrently and the manifest seals the bundle last.
func (e *Exporter) Run(ctx context.Context) (*Bundle, error) {
	now := time.Now().UTC()
	runID := utils.NewRunID(now)
	dir := filepath.Join(e.outputDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bundle directory: %w", err)
	}

	inventory, err := e.modelRepo.ListWithLatestTiering(ctx)
	if err != nil {
		return nil, err
	}
	records, err := e.tieringRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rubric := e.rubrics.Active()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return writeInventoryCSV(filepath.Join(dir, FileModelInventory), inventory) })
	g.Go(func() error { return writeTieringJSON(filepath.Join(dir, FileRiskTiering), records) })
	g.Go(func() error { return writeJSON(filepath.Join(dir, FileControlsChecklist), rubric.ControlMapping) })
	g.Go(func() error { return writeJSON(filepath.Join(dir, FileConfigSnapshot), rubric) })
	g.Go(func() error {
		return writeExecutiveSummary(filepath.Join(dir, FileExecutiveSummary), runID, now, inventory)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("write bundle artifacts: %w", err)
	}

	names := []string{
		FileModelInventory,
		FileRiskTiering,
		FileControlsChecklist,
		FileExecutiveSummary,
		FileConfigSnapshot,
	}
	artifacts := make([]Artifact, 0, len(names))
	for _, name := range names {
		artifact, err := hashArtifact(dir, name)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	manifest := Manifest{
		RunID:          runID,
		Timestamp:      now,
		GeneratedFiles: artifacts,
	}
	if err := writeJSON(filepath.Join(dir, FileEvidenceManifest), manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	e.log.Info(ctx, "evidence bundle written",
		logger.String("run_id", runID),
		logger.String("dir", dir),
		logger.Int("artifacts", len(artifacts)+1),
	)

	return &Bundle{RunID: runID, Dir: dir, Artifacts: artifacts}, nil
}

func hashArtifact(dir, name string) (Artifact, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return Artifact{}, fmt.Errorf("hash artifact %s: %w", name, err)
	}
	sum := sha256.Sum256(data)
	return Artifact{
		Name:      name,
		SHA256:    hex.EncodeToString(sum[:]),
		SizeBytes: int64(len(data)),
	}, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func writeInventoryCSV(path string, inventory []repository.ModelWithTiering) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"model_id", "model_name", "risk_score", "risk_tier", "created_at", "tiering_timestamp"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range inventory {
		record := []string{
			row.Model.ModelID,
			row.Model.ModelName,
			"", "", row.Model.CreatedAt.UTC().Format(time.RFC3339), "",
		}
		if row.Latest != nil {
			record[2] = strconv.FormatFloat(row.Latest.Score, 'f', -1, 64)
			record[3] = row.Latest.Tier.Label
			record[5] = row.Latest.Timestamp.UTC().Format(time.RFC3339)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTieringJSON(path string, records []models.TieringRecord) error {
	// Keep the artifact a JSON array even when there is no history yet.
	if records == nil {
		records = []models.TieringRecord{}
	}
	return writeJSON(path, records)
}

func writeExecutiveSummary(path, runID string, now time.Time, inventory []repository.ModelWithTiering) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Enterprise AI Model Risk Tiering Summary - Run %s\n\n", runID)
	fmt.Fprintf(&b, "**Date:** %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("This report provides a snapshot of the enterprise AI model inventory and their assigned risk tiers, based on the automated tiering framework.\n\n")

	b.WriteString("## Model Inventory Overview\n\n")
	b.WriteString("| Model ID | Model Name | Risk Score | Risk Tier | Last Tiered |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, row := range inventory {
		score, tier, tieredAt := "-", "-", "-"
		if row.Latest != nil {
			score = strconv.FormatFloat(row.Latest.Score, 'f', -1, 64)
			tier = row.Latest.Tier.Label
			tieredAt = row.Latest.Timestamp.UTC().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Model.ModelID, row.Model.ModelName, score, tier, tieredAt)
	}

	b.WriteString("\n## Key Observations\n\n")
	fmt.Fprintf(&b, "- Total Models Onboarded: %d\n", len(inventory))
	counts := map[string]int{}
	for _, row := range inventory {
		if row.Latest != nil {
			counts[row.Latest.Tier.Label]++
		}
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(&b, "- Models in %s: %d\n", label, counts[label])
	}

	b.WriteString("\nThis summary confirms the effective application of our risk tiering framework, ensuring all new models are appropriately classified for governance and control allocation.\n")

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
