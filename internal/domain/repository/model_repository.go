// Package repository defines the persistence interfaces of the domain layer.
// Implementations live under internal/infrastructure/persistence.
package repository

import (
	"context"

	"github.com/quantgov/mrm/internal/domain/models"
)

// ModelWithTiering pairs an inventory record with its most recent tiering
// result. Latest is nil for models that have never been tiered.
type ModelWithTiering struct {
	Model  models.Model
	Latest *models.TieringRecord
}

// ModelRepository persists the model inventory.
type ModelRepository interface {
	// Save inserts a new model. It returns a duplicate_id error when the
	// model_id already exists; an existing record is never overwritten.
	Save(ctx context.Context, model *models.Model) error

	// FindByID returns the model or a not_found error.
	FindByID(ctx context.Context, modelID string) (*models.Model, error)

	// ListWithLatestTiering returns every registered model joined with its
	// latest tiering record, newest registrations first. Models without any
	// tiering run appear with a nil Latest.
	ListWithLatestTiering(ctx context.Context) ([]ModelWithTiering, error)
}
