package model

import (
	"time"
)

// OAuthToken 第三方平台令牌，每个 provider 仅一行，令牌密文存储
type OAuthToken struct {
	ID                    uint64    `gorm:"primaryKey"`
	Provider              string    `gorm:"type:varchar(20);not null;uniqueIndex;default:linkedin" json:"provider"`
	AccessTokenEncrypted  string    `gorm:"type:text;not null" json:"-"`
	RefreshTokenEncrypted string    `gorm:"type:text;not null" json:"-"`
	AccessTokenExpiresAt  time.Time `gorm:"not null" json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `gorm:"not null" json:"refresh_token_expires_at"`
	Scopes                string    `gorm:"type:varchar(255);not null" json:"scopes"`
	LinkedinMemberID      *string   `gorm:"type:varchar(64)" json:"linkedin_member_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}
