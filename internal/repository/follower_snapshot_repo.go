package repository

import (
	"Beacon/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerSnapshotRepo interface {
	// UpsertOverwrite 按日期覆盖。粉丝数是绝对值，后导入的直接替换
	UpsertOverwrite(ctx context.Context, snapshot *model.FollowerSnapshot) error
	ListRange(ctx context.Context, from, to time.Time) ([]*model.FollowerSnapshot, error)
	Latest(ctx context.Context) (*model.FollowerSnapshot, error)
}

type followerSnapshotRepoImpl struct {
	db *gorm.DB
}

func NewFollowerSnapshotRepository(db *gorm.DB) FollowerSnapshotRepo {
	return &followerSnapshotRepoImpl{db: db}
}

func (r *followerSnapshotRepoImpl) UpsertOverwrite(ctx context.Context, snapshot *model.FollowerSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_followers",
			"new_followers",
		}),
	}).Create(snapshot).Error
}

func (r *followerSnapshotRepoImpl) ListRange(ctx context.Context, from, to time.Time) ([]*model.FollowerSnapshot, error) {
	snapshots := make([]*model.FollowerSnapshot, 0)
	err := r.db.WithContext(ctx).
		Where("snapshot_date BETWEEN ? AND ?", from, to).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *followerSnapshotRepoImpl) Latest(ctx context.Context) (*model.FollowerSnapshot, error) {
	var snapshot model.FollowerSnapshot
	err := r.db.WithContext(ctx).Order("snapshot_date DESC").First(&snapshot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
