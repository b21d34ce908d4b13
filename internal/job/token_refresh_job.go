package job

import (
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// TokenRefreshJob 定期刷新临近过期的访问令牌
type TokenRefreshJob struct {
	oauthService service.OAuthService
}

func NewTokenRefreshJob(oauthService service.OAuthService) *TokenRefreshJob {
	return &TokenRefreshJob{oauthService: oauthService}
}

func (s *TokenRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 多实例部署时只允许一个实例刷新
	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.TokenRefreshLock, lockUUID, time.Minute, 0)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.TokenRefreshLock, lockUUID)

	if err := s.oauthService.RefreshIfNeeded(ctx); err != nil {
		log.ErrorContext(ctx, "令牌刷新失败", "err", err)
	}
}
