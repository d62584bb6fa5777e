// Package application wires domain logic to infrastructure: it holds the
// active rubric, orchestrates tiering runs, and exposes the inventory and
// export use cases consumed by the HTTP layer and the CLI.
package application

import (
	"context"
	"sync"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/logger"
)

// RubricManager holds the single active rubric for the process. Reads take
// a snapshot clone, so an in-flight tiering run keeps scoring against the
// rubric it started with even if an edit lands mid-run. Concurrent edits
// resolve last-writer-wins; an invalid replacement is rejected and the
// previous rubric stays active.
type RubricManager struct {
	mu     sync.RWMutex
	active *models.Rubric
	log    logger.Logger
}

// NewRubricManager creates a manager seeded with the given rubric.
// The seed must already be validated; NewRubricManager does not re-check.
func NewRubricManager(seed *models.Rubric, log logger.Logger) *RubricManager {
	return &RubricManager{
		active: seed.Clone(),
		log:    log.WithComponent("rubric_manager"),
	}
}

// Active returns a deep clone of the current rubric. Callers own the clone
// and may hold it for the duration of a scoring run.
func (m *RubricManager) Active() *models.Rubric {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active.Clone()
}

// Replace validates the candidate and atomically swaps it in. On validation
// failure the active rubric is untouched and the invalid_rubric error is
// returned to the caller.
func (m *RubricManager) Replace(ctx context.Context, candidate *models.Rubric) error {
	if err := candidate.Validate(); err != nil {
		m.log.Warn(ctx, "rejected invalid rubric replacement", logger.Error(err))
		return err
	}

	m.mu.Lock()
	m.active = candidate.Clone()
	m.mu.Unlock()

	m.log.Info(ctx, "active rubric replaced",
		logger.Int("factors", len(candidate.Weights)),
		logger.Int("tiers", len(candidate.Thresholds)),
	)
	return nil
}
