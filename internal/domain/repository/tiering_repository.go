package repository

import (
	"context"

	"github.com/quantgov/mrm/internal/domain/models"
)

// TieringRepository persists the append-only history of tiering records.
type TieringRepository interface {
	// Save appends a new tiering record and fills in the storage-assigned
	// Seq. Existing records are never updated or deleted.
	Save(ctx context.Context, record *models.TieringRecord) error

	// FindLatestByModelID returns the most recent record for the model,
	// latest timestamp first with Seq breaking ties. It returns (nil, nil)
	// when the model has no tiering history.
	FindLatestByModelID(ctx context.Context, modelID string) (*models.TieringRecord, error)

	// FindAllByModelID returns the model's full tiering history, newest first.
	FindAllByModelID(ctx context.Context, modelID string) ([]models.TieringRecord, error)

	// FindAll returns every tiering record, newest first. Used by exports.
	FindAll(ctx context.Context) ([]models.TieringRecord, error)
}
