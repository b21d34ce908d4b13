package service

import (
	"Beacon/internal/api/config"
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/linkedin"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/pkg/security"
	"Beacon/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// 令牌剩余有效期低于这个值就提前刷新
const refreshAheadWindow = 24 * time.Hour

type OAuthService interface {
	BeginAuth(ctx context.Context) (*dto.AuthURLDTO, error)
	HandleCallback(ctx context.Context, code, state string) error
	Status(ctx context.Context) (*dto.TokenStatusDTO, error)
	Disconnect(ctx context.Context) error
	// AccessToken 返回可用的明文访问令牌及成员标识，必要时先刷新
	AccessToken(ctx context.Context) (string, string, error)
	RefreshIfNeeded(ctx context.Context) error
}

type oauthServiceImpl struct {
	tokenRepo repository.OAuthTokenRepo
	client    *linkedin.Client
	cipher    *security.TokenCipher
}

func NewOAuthService(tokenRepo repository.OAuthTokenRepo, client *linkedin.Client, cipher *security.TokenCipher) OAuthService {
	return &oauthServiceImpl{
		tokenRepo: tokenRepo,
		client:    client,
		cipher:    cipher,
	}
}

func (s *oauthServiceImpl) BeginAuth(ctx context.Context) (*dto.AuthURLDTO, error) {
	state, err := security.SignState(config.Cfg.Security.StateSignKey, consts.ProviderLinkedin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthURLDTO{
		AuthURL: s.client.AuthorizeURL(state),
		State:   state,
	}, nil
}

// HandleCallback 校验 state、换令牌、落库。state 一次性使用，
// 重放直接拒绝
func (s *oauthServiceImpl) HandleCallback(ctx context.Context, code, state string) error {
	if code == "" || state == "" {
		return ErrStateInvalid
	}
	claims, err := security.ValidateState(config.Cfg.Security.StateSignKey, state)
	if err != nil {
		log.WarnContext(ctx, "state 校验失败", "err", err)
		return ErrStateInvalid
	}

	usedKey := consts.OAuthStateUsedKey + claims.Nonce
	if used, _ := redis.GetValue(ctx, usedKey); used != "" {
		return ErrStateInvalid
	}
	_ = redis.SetWithExpiration(ctx, usedKey, "1", 15*time.Minute)

	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	var memberID *string
	if info, err := s.client.UserInfo(ctx, token.AccessToken); err == nil && info.Sub != "" {
		memberID = &info.Sub
	} else if err != nil {
		log.WarnContext(ctx, "获取成员信息失败", "err", err)
	}

	return s.storeToken(ctx, token, memberID)
}

func (s *oauthServiceImpl) Status(ctx context.Context) (*dto.TokenStatusDTO, error) {
	token, err := s.tokenRepo.GetByProvider(ctx, consts.ProviderLinkedin)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return &dto.TokenStatusDTO{Authorized: false, Provider: consts.ProviderLinkedin}, nil
	}
	return &dto.TokenStatusDTO{
		Authorized:            token.AccessTokenExpiresAt.After(time.Now()),
		Provider:              token.Provider,
		Scopes:                token.Scopes,
		AccessTokenExpiresAt:  token.AccessTokenExpiresAt.Format(time.RFC3339),
		RefreshTokenExpiresAt: token.RefreshTokenExpiresAt.Format(time.RFC3339),
	}, nil
}

func (s *oauthServiceImpl) Disconnect(ctx context.Context) error {
	return s.tokenRepo.DeleteByProvider(ctx, consts.ProviderLinkedin)
}

func (s *oauthServiceImpl) AccessToken(ctx context.Context) (string, string, error) {
	token, err := s.tokenRepo.GetByProvider(ctx, consts.ProviderLinkedin)
	if err != nil {
		return "", "", err
	}
	if token == nil {
		return "", "", ErrNotAuthorized
	}

	if time.Until(token.AccessTokenExpiresAt) < refreshAheadWindow {
		refreshed, err := s.refresh(ctx, token)
		if err != nil {
			return "", "", err
		}
		token = refreshed
	}

	accessToken, err := s.cipher.Decrypt(token.AccessTokenEncrypted)
	if err != nil {
		return "", "", err
	}
	var memberID string
	if token.LinkedinMemberID != nil {
		memberID = *token.LinkedinMemberID
	}
	return accessToken, memberID, nil
}

// RefreshIfNeeded 定时任务入口，令牌临近过期就刷新
func (s *oauthServiceImpl) RefreshIfNeeded(ctx context.Context) error {
	token, err := s.tokenRepo.GetByProvider(ctx, consts.ProviderLinkedin)
	if err != nil || token == nil {
		return err
	}
	if time.Until(token.AccessTokenExpiresAt) >= refreshAheadWindow {
		return nil
	}
	_, err = s.refresh(ctx, token)
	return err
}

func (s *oauthServiceImpl) refresh(ctx context.Context, token *model.OAuthToken) (*model.OAuthToken, error) {
	if time.Now().After(token.RefreshTokenExpiresAt) {
		return nil, ErrTokenExpired
	}
	refreshToken, err := s.cipher.Decrypt(token.RefreshTokenEncrypted)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.storeToken(ctx, resp, token.LinkedinMemberID); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "访问令牌已刷新", "provider", token.Provider)
	return s.tokenRepo.GetByProvider(ctx, consts.ProviderLinkedin)
}

func (s *oauthServiceImpl) storeToken(ctx context.Context, token *linkedin.TokenResponse, memberID *string) error {
	accessEncrypted, err := s.cipher.Encrypt(token.AccessToken)
	if err != nil {
		return err
	}
	refreshEncrypted, err := s.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.tokenRepo.Upsert(ctx, &model.OAuthToken{
		Provider:              consts.ProviderLinkedin,
		AccessTokenEncrypted:  accessEncrypted,
		RefreshTokenEncrypted: refreshEncrypted,
		AccessTokenExpiresAt:  now.Add(time.Duration(token.ExpiresIn) * time.Second),
		RefreshTokenExpiresAt: now.Add(time.Duration(token.RefreshTokenExpiresIn) * time.Second),
		Scopes:                token.Scope,
		LinkedinMemberID:      memberID,
	})
}
