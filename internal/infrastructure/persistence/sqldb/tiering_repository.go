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

// tieringRow is the storage shape of one tiering run. Rows are append-only;
// seq is a monotonic storage sequence that orders runs recorded within the
// same timestamp.
type tieringRow struct {
	Seq          int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	TieringID    string    `gorm:"column:tiering_id;uniqueIndex;not null"`
	ModelID      string    `gorm:"column:model_id;index;not null"`
	Timestamp    time.Time `gorm:"column:timestamp;index;not null"`
	RiskScore    float64   `gorm:"column:risk_score;not null"`
	TierRank     int       `gorm:"column:tier_rank;not null"`
	TierLabel    string    `gorm:"column:tier_label;not null"`
	Rationale    string    `gorm:"column:rationale;not null"`
	ControlsJSON string    `gorm:"column:controls_json;not null"`
}

// TableName sets the tiering table name for GORM.
func (tieringRow) TableName() string {
	return "tiering"
}

func newTieringRow(record *models.TieringRecord) (*tieringRow, error) {
	controls, err := json.Marshal(record.Controls)
	if err != nil {
		return nil, errors.ErrPersistenceFailure("encode controls", err)
	}
	return &tieringRow{
		TieringID:    record.TieringID,
		ModelID:      record.ModelID,
		Timestamp:    record.Timestamp,
		RiskScore:    record.Score,
		TierRank:     record.Tier.Rank,
		TierLabel:    record.Tier.Label,
		Rationale:    record.Rationale,
		ControlsJSON: string(controls),
	}, nil
}

func (r *tieringRow) toDomain() (*models.TieringRecord, error) {
	var controls []string
	if err := json.Unmarshal([]byte(r.ControlsJSON), &controls); err != nil {
		return nil, errors.ErrPersistenceFailure("decode controls", err)
	}
	return &models.TieringRecord{
		TieringID: r.TieringID,
		ModelID:   r.ModelID,
		Seq:       r.Seq,
		Timestamp: r.Timestamp,
		Score:     r.RiskScore,
		Tier:      models.Tier{Rank: r.TierRank, Label: r.TierLabel},
		Rationale: r.Rationale,
		Controls:  controls,
	}, nil
}

type tieringRepository struct {
	db  *gorm.DB
	log logger.Logger
}

// NewTieringRepository creates the GORM-backed TieringRepository.
func NewTieringRepository(db *gorm.DB, log logger.Logger) repository.TieringRepository {
	return &tieringRepository{
		db:  db,
		log: log.WithComponent("tiering_repository"),
	}
}

func (r *tieringRepository) Save(ctx context.Context, record *models.TieringRecord) error {
	row, err := newTieringRow(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return errors.ErrPersistenceFailure("save tiering record", err)
	}
	record.Seq = row.Seq
	return nil
}

func (r *tieringRepository) FindLatestByModelID(ctx context.Context, modelID string) (*models.TieringRecord, error) {
	var row tieringRow
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("timestamp DESC, seq DESC").
		First(&row).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.ErrPersistenceFailure("find latest tiering", err)
	}
	return row.toDomain()
}

func (r *tieringRepository) FindAllByModelID(ctx context.Context, modelID string) ([]models.TieringRecord, error) {
	var rows []tieringRow
	err := r.db.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("timestamp DESC, seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.ErrPersistenceFailure("list tiering history", err)
	}
	return toDomainRecords(rows)
}

func (r *tieringRepository) FindAll(ctx context.Context) ([]models.TieringRecord, error) {
	var rows []tieringRow
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.ErrPersistenceFailure("list tiering records", err)
	}
	return toDomainRecords(rows)
}

func toDomainRecords(rows []tieringRow) ([]models.TieringRecord, error) {
	out := make([]models.TieringRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	return out, nil
}
