package model

import (
	"time"
)

// Upload 导入凭证。FileHash 唯一，作为文件级去重闸门
type Upload struct {
	ID              uint64    `gorm:"primaryKey"`
	Filename        string    `gorm:"type:varchar(255);not null" json:"filename"`
	FileHash        string    `gorm:"type:char(64);not null;uniqueIndex" json:"file_hash"`
	UploadDate      time.Time `gorm:"autoCreateTime;column:upload_date" json:"upload_date"`
	RecordsImported int       `gorm:"not null;default:0" json:"records_imported"`
	Status          string    `gorm:"type:varchar(20);not null;default:completed" json:"status"`
}

func (Upload) TableName() string {
	return "uploads"
}
