package model

import (
	"time"
)

// FollowerSnapshot 单日粉丝快照。总数是绝对值，重复导入直接覆盖
type FollowerSnapshot struct {
	ID             uint64    `gorm:"primaryKey"`
	SnapshotDate   time.Time `gorm:"not null;uniqueIndex;column:snapshot_date" json:"snapshot_date"`
	TotalFollowers int       `gorm:"not null" json:"total_followers"`
	NewFollowers   int       `gorm:"not null;default:0" json:"new_followers"`
	CreatedAt      time.Time `json:"created_at"`
}

func (FollowerSnapshot) TableName() string {
	return "follower_snapshots"
}
