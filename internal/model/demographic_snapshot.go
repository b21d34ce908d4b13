package model

import (
	"time"
)

// DemographicSnapshot 账号级受众分布，(日期, 类目, 取值) 唯一
type DemographicSnapshot struct {
	ID           uint64    `gorm:"primaryKey"`
	SnapshotDate time.Time `gorm:"not null;index:idx_demo_snapshot,unique;column:snapshot_date" json:"snapshot_date"`
	Category     string    `gorm:"type:varchar(50);not null;index:idx_demo_snapshot,unique" json:"category"`
	Value        string    `gorm:"type:varchar(255);not null;index:idx_demo_snapshot,unique" json:"value"`
	Percentage   float64   `gorm:"not null" json:"percentage"`
	CreatedAt    time.Time `json:"created_at"`
}

func (DemographicSnapshot) TableName() string {
	return "demographic_snapshots"
}
