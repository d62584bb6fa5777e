// Package fakes provides in-memory test doubles for the domain interfaces.
package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
	"github.com/quantgov/mrm/pkg/errors"
)

// InMemoryModelRepository is a map-backed ModelRepository.
type InMemoryModelRepository struct {
	mu      sync.RWMutex
	models  map[string]models.Model
	order   []string
	tiering *InMemoryTieringRepository

	// SaveErr, when set, is returned by Save to simulate storage failure.
	SaveErr error
}

// NewInMemoryModelRepository creates an empty inventory fake. The tiering
// fake is consulted by ListWithLatestTiering and may be nil.
func NewInMemoryModelRepository(tiering *InMemoryTieringRepository) *InMemoryModelRepository {
	return &InMemoryModelRepository{
		models:  make(map[string]models.Model),
		tiering: tiering,
	}
}

func (r *InMemoryModelRepository) Save(_ context.Context, model *models.Model) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.models[model.ModelID]; exists {
		return errors.ErrDuplicateModelID(model.ModelID)
	}
	r.models[model.ModelID] = *model
	r.order = append(r.order, model.ModelID)
	return nil
}

func (r *InMemoryModelRepository) FindByID(_ context.Context, modelID string) (*models.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	model, ok := r.models[modelID]
	if !ok {
		return nil, errors.ErrModelNotFound(modelID)
	}
	return &model, nil
}

func (r *InMemoryModelRepository) ListWithLatestTiering(ctx context.Context) ([]repository.ModelWithTiering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]repository.ModelWithTiering, 0, len(r.order))
	// Newest registration first.
	for i := len(r.order) - 1; i >= 0; i-- {
		model := r.models[r.order[i]]
		row := repository.ModelWithTiering{Model: model}
		if r.tiering != nil {
			latest, err := r.tiering.FindLatestByModelID(ctx, model.ModelID)
			if err != nil {
				return nil, err
			}
			row.Latest = latest
		}
		out = append(out, row)
	}
	return out, nil
}

// InMemoryTieringRepository is a slice-backed append-only TieringRepository.
type InMemoryTieringRepository struct {
	mu      sync.RWMutex
	records []models.TieringRecord
	nextSeq int64

	// SaveErr, when set, is returned by Save to simulate storage failure.
	SaveErr error
}

// NewInMemoryTieringRepository creates an empty tiering history fake.
func NewInMemoryTieringRepository() *InMemoryTieringRepository {
	return &InMemoryTieringRepository{}
}

func (r *InMemoryTieringRepository) Save(_ context.Context, record *models.TieringRecord) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	record.Seq = r.nextSeq
	r.records = append(r.records, *record)
	return nil
}

func (r *InMemoryTieringRepository) FindLatestByModelID(_ context.Context, modelID string) (*models.TieringRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *models.TieringRecord
	for i := range r.records {
		record := r.records[i]
		if record.ModelID != modelID {
			continue
		}
		if latest == nil ||
			record.Timestamp.After(latest.Timestamp) ||
			(record.Timestamp.Equal(latest.Timestamp) && record.Seq > latest.Seq) {
			copied := record
			latest = &copied
		}
	}
	return latest, nil
}

func (r *InMemoryTieringRepository) FindAllByModelID(_ context.Context, modelID string) ([]models.TieringRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TieringRecord, 0)
	for _, record := range r.records {
		if record.ModelID == modelID {
			out = append(out, record)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *InMemoryTieringRepository) FindAll(_ context.Context) ([]models.TieringRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TieringRecord, len(r.records))
	copy(out, r.records)
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(records []models.TieringRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.After(records[j].Timestamp)
		}
		return records[i].Seq > records[j].Seq
	})
}
