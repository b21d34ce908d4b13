package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type DailyMetricRepo interface {
	// UpsertMax 按（帖子，日期）合并，计数器取大值。
	// 账号级记录 post_id 为 NULL，NULL 不等于 NULL，必须用 IS NULL 查询
	UpsertMax(ctx context.Context, metric *model.DailyMetric) error
	ListAccountLevel(ctx context.Context, from, to time.Time) ([]*model.DailyMetric, error)
}

type dailyMetricRepoImpl struct {
	db *gorm.DB
}

func NewDailyMetricRepository(db *gorm.DB) DailyMetricRepo {
	return &dailyMetricRepoImpl{db: db}
}

func (r *dailyMetricRepoImpl) UpsertMax(ctx context.Context, metric *model.DailyMetric) error {
	query := r.db.WithContext(ctx).Where("metric_date = ?", metric.MetricDate)
	if metric.PostID == nil {
		query = query.Where("post_id IS NULL")
	} else {
		query = query.Where("post_id = ?", *metric.PostID)
	}

	var existing model.DailyMetric
	err := query.First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(metric).Error
		}
		return err
	}

	existing.Impressions = maxInt(existing.Impressions, metric.Impressions)
	existing.Engagements = maxInt(existing.Engagements, metric.Engagements)
	existing.MembersReached = maxInt(existing.MembersReached, metric.MembersReached)
	existing.Reactions = maxInt(existing.Reactions, metric.Reactions)
	existing.Comments = maxInt(existing.Comments, metric.Comments)
	existing.Shares = maxInt(existing.Shares, metric.Shares)
	existing.Clicks = maxInt(existing.Clicks, metric.Clicks)
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *dailyMetricRepoImpl) ListAccountLevel(ctx context.Context, from, to time.Time) ([]*model.DailyMetric, error) {
	metrics := make([]*model.DailyMetric, 0)
	err := r.db.WithContext(ctx).
		Where("post_id IS NULL AND metric_date BETWEEN ? AND ?", from, to).
		Order("metric_date ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
