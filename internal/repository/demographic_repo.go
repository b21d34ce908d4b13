package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DemographicSnapshotRepo interface {
	// UpsertOverwrite 按（日期，类目，取值）覆盖百分比
	UpsertOverwrite(ctx context.Context, snapshot *model.DemographicSnapshot) error
	LatestSnapshotDate(ctx context.Context) (time.Time, error)
	ListByDate(ctx context.Context, date time.Time) ([]*model.DemographicSnapshot, error)
}

type demographicSnapshotRepoImpl struct {
	db *gorm.DB
}

func NewDemographicSnapshotRepository(db *gorm.DB) DemographicSnapshotRepo {
	return &demographicSnapshotRepoImpl{db: db}
}

func (r *demographicSnapshotRepoImpl) UpsertOverwrite(ctx context.Context, snapshot *model.DemographicSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}, {Name: "category"}, {Name: "value"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentage"}),
	}).Create(snapshot).Error
}

func (r *demographicSnapshotRepoImpl) LatestSnapshotDate(ctx context.Context) (time.Time, error) {
	var snapshot model.DemographicSnapshot
	err := r.db.WithContext(ctx).Order("snapshot_date DESC").First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return snapshot.SnapshotDate, nil
}

func (r *demographicSnapshotRepoImpl) ListByDate(ctx context.Context, date time.Time) ([]*model.DemographicSnapshot, error) {
	snapshots := make([]*model.DemographicSnapshot, 0)
	err := r.db.WithContext(ctx).
		Where("snapshot_date = ?", date).
		Order("category ASC, percentage DESC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
