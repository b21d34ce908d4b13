package model

import (
	"time"
)

// PostDemographic 单帖受众分布，仅来自单帖导出格式。
// company_size / company 两类只在单帖导出中出现
type PostDemographic struct {
	ID         uint64    `gorm:"primaryKey"`
	PostID     uint64    `gorm:"not null;index:idx_post_demo,unique" json:"post_id"`
	Category   string    `gorm:"type:varchar(50);not null;index:idx_post_demo,unique" json:"category"`
	Value      string    `gorm:"type:varchar(255);not null;index:idx_post_demo,unique" json:"value"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PostDemographic) TableName() string {
	return "post_demographics"
}
