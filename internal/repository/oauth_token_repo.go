package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OAuthTokenRepo interface {
	GetByProvider(ctx context.Context, provider string) (*model.OAuthToken, error)
	// Upsert 每个 provider 只保留一行
	Upsert(ctx context.Context, token *model.OAuthToken) error
	DeleteByProvider(ctx context.Context, provider string) error
}

type oauthTokenRepoImpl struct {
	db *gorm.DB
}

func NewOAuthTokenRepository(db *gorm.DB) OAuthTokenRepo {
	return &oauthTokenRepoImpl{db: db}
}

func (r *oauthTokenRepoImpl) GetByProvider(ctx context.Context, provider string) (*model.OAuthToken, error) {
	var token model.OAuthToken
	err := r.db.WithContext(ctx).Where("provider = ?", provider).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *oauthTokenRepoImpl) Upsert(ctx context.Context, token *model.OAuthToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token_encrypted",
			"refresh_token_encrypted",
			"access_token_expires_at",
			"refresh_token_expires_at",
			"scopes",
			"linkedin_member_id",
		}),
	}).Create(token).Error
}

func (r *oauthTokenRepoImpl) DeleteByProvider(ctx context.Context, provider string) error {
	return r.db.WithContext(ctx).Where("provider = ?", provider).Delete(&model.OAuthToken{}).Error
}
