package repository

import (
	"Beacon/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostDemographicRepo interface {
	// UpsertOverwrite 按（帖子，类目，取值）覆盖百分比
	UpsertOverwrite(ctx context.Context, demo *model.PostDemographic) error
	ListByPost(ctx context.Context, postID uint64) ([]*model.PostDemographic, error)
}

type postDemographicRepoImpl struct {
	db *gorm.DB
}

func NewPostDemographicRepository(db *gorm.DB) PostDemographicRepo {
	return &postDemographicRepoImpl{db: db}
}

func (r *postDemographicRepoImpl) UpsertOverwrite(ctx context.Context, demo *model.PostDemographic) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "category"}, {Name: "value"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentage"}),
	}).Create(demo).Error
}

func (r *postDemographicRepoImpl) ListByPost(ctx context.Context, postID uint64) ([]*model.PostDemographic, error) {
	demos := make([]*model.PostDemographic, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("category ASC, percentage DESC").
		Find(&demos).Error
	if err != nil {
		return nil, err
	}
	return demos, nil
}
