package model

import (
	"time"
)

// DailyMetric 单日时间序列点。PostID 为 NULL 表示账号级记录，
// 不同日期的账号级记录可并存（NULL 不参与唯一索引冲突）
type DailyMetric struct {
	ID             uint64    `gorm:"primaryKey"`
	PostID         *uint64   `gorm:"index:idx_post_metric_date,unique" json:"post_id"`
	MetricDate     time.Time `gorm:"not null;index:idx_post_metric_date,unique;column:metric_date" json:"metric_date"`
	Impressions    int       `gorm:"not null;default:0" json:"impressions"`
	Engagements    int       `gorm:"not null;default:0" json:"engagements"`
	MembersReached int       `gorm:"not null;default:0" json:"members_reached"`
	Reactions      int       `gorm:"not null;default:0" json:"reactions"`
	Comments       int       `gorm:"not null;default:0" json:"comments"`
	Shares         int       `gorm:"not null;default:0" json:"shares"`
	Clicks         int       `gorm:"not null;default:0" json:"clicks"`
	CreatedAt      time.Time `json:"created_at"`
}

func (DailyMetric) TableName() string {
	return "daily_metrics"
}
