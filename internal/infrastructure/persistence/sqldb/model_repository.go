package sqldb

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/repository"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

// modelRow is the storage shape of an inventory record. The full domain
// model is serialized into metadata_json so a rubric can score extension
// attributes without a schema migration; the indexed columns cover the
// queries the service actually runs.
type modelRow struct {
	ModelID      string    `gorm:"column:model_id;primaryKey"`
	ModelName    string    `gorm:"column:model_name;not null"`
	MetadataJSON string    `gorm:"column:metadata_json;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index"`
}

// TableName sets the inventory table name for GORM.
func (modelRow) TableName() string {
	return "models"
}

func newModelRow(model *models.Model) (*modelRow, error) {
	metadata, err := json.Marshal(model)
	if err != nil {
		return nil, errors.ErrPersistenceFailure("encode model metadata", err)
	}
	return &modelRow{
		ModelID:      model.ModelID,
		ModelName:    model.ModelName,
		MetadataJSON: string(metadata),
		CreatedAt:    model.CreatedAt,
	}, nil
}

func (r *modelRow) toDomain() (*models.Model, error) {
	var model models.Model
	if err := json.Unmarshal([]byte(r.MetadataJSON), &model); err != nil {
		return nil, errors.ErrPersistenceFailure("decode model metadata", err)
	}
	// The indexed columns are authoritative for identity and ordering.
	model.ModelID = r.ModelID
	model.ModelName = r.ModelName
	model.CreatedAt = r.CreatedAt
	return &model, nil
}

type modelRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewModelRepository creates the GORM-backed ModelRepository.
func NewModelRepository(db *gorm.DB, log logger.Logger) repository.ModelRepository {
	return &modelRepository{
		db:  db,
		log: log.WithComponent("model_repository"),
	}
}

func (r *modelRepository) Save(ctx context.Context, model *models.Model) error {
	row, err := newModelRow(model)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrDuplicateModelID(model.ModelID)
		}
		return errors.ErrPersistenceFailure("save model", err)
	}
	return nil
}

func (r *modelRepository) FindByID(ctx context.Context, modelID string) (*models.Model, error) {
	var row modelRow
	if err := r.db.WithContext(ctx).Where("model_id = ?", modelID).First(&row).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrModelNotFound(modelID)
		}
		return nil, errors.ErrPersistenceFailure("find model", err)
	}
	return row.toDomain()
}

func (r *modelRepository) ListWithLatestTiering(ctx context.Context) ([]repository.ModelWithTiering, error) {
	// Both reads run in one transaction so the listing reflects a single
	// snapshot: a tiering run landing mid-call is either visible to both
	// statements or to neither.
	var modelRows []modelRow
	var latestRows []tieringRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at DESC").Find(&modelRows).Error; err != nil {
			return err
		}
		// Latest record per model: newest timestamp, with the storage
		// sequence breaking ties between runs stored in the same instant.
		return tx.Raw(`
			SELECT * FROM (
				SELECT t.*, ROW_NUMBER() OVER (
					PARTITION BY model_id ORDER BY timestamp DESC, seq DESC
				) AS rn
				FROM tiering t
			) ranked
			WHERE rn = 1
		`).Scan(&latestRows).Error
	})
	if err != nil {
		return nil, errors.ErrPersistenceFailure("list models with latest tiering", err)
	}

	latestByModel := make(map[string]*models.TieringRecord, len(latestRows))
	for i := range latestRows {
		record, err := latestRows[i].toDomain()
		if err != nil {
			return nil, err
		}
		latestByModel[record.ModelID] = record
	}

	out := make([]repository.ModelWithTiering, 0, len(modelRows))
	for i := range modelRows {
		model, err := modelRows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, repository.ModelWithTiering{
			Model:  *model,
			Latest: latestByModel[model.ModelID],
		})
	}
	return out, nil
}
