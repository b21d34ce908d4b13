package service

import (
	"Beacon/internal/api/config"
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/linkedin"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"context"
	"crypto/sha256"
	"encoding/hex"
	log "log/slog"
	"strings"
	"time"
)

type PublishService interface {
	Publish(ctx context.Context, req *dto.PublishRequestDTO) (*dto.PublishResultDTO, error)
}

type publishServiceImpl struct {
	postRepo     repository.PostRepo
	oauthService OAuthService
	client       *linkedin.Client
	dedup        *util.DedupWindow
}

func NewPublishService(postRepo repository.PostRepo, oauthService OAuthService, client *linkedin.Client) PublishService {
	size := config.Cfg.Publish.DedupWindowSize
	ttl := time.Duration(config.Cfg.Publish.DedupTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &publishServiceImpl{
		postRepo:     postRepo,
		oauthService: oauthService,
		client:       client,
		dedup:        util.NewDedupWindow(size, ttl),
	}
}

// Publish 发布草稿或即兴内容。相同内容短时间内重复提交直接拒绝
func (s *publishServiceImpl) Publish(ctx context.Context, req *dto.PublishRequestDTO) (*dto.PublishResultDTO, error) {
	var draft *model.Post
	content := strings.TrimSpace(req.Content)

	if req.DraftID != nil {
		post, err := s.postRepo.GetPost(ctx, *req.DraftID)
		if err != nil || post == nil {
			return nil, ErrDraftNotFound
		}
		if post.Status == nil || *post.Status != model.PostStatusDraft {
			return nil, ErrDraftNotFound
		}
		draft = post
		if content == "" && post.Content != nil {
			content = strings.TrimSpace(*post.Content)
		}
	}
	if content == "" {
		return nil, ErrNothingToPublish
	}

	contentKey := hashContent(content)
	if s.dedup.Seen(contentKey) {
		return nil, ErrDuplicatePublish
	}

	accessToken, memberID, err := s.oauthService.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if memberID == "" {
		return nil, ErrNotAuthorized
	}

	result, err := s.client.PublishPost(ctx, accessToken, memberID, content, req.Visibility)
	if err != nil {
		return nil, err
	}
	s.dedup.Add(contentKey)

	post := draft
	if post == nil {
		post = &model.Post{PostDate: util.GetMidnight(time.Now())}
	}
	status := model.PostStatusPublished
	post.Status = &status
	post.Content = &content
	post.LinkedinPostID = &result.ActivityID
	post.PostURL = &result.PostURL
	post.PostDate = util.GetMidnight(time.Now())
	hour := time.Now().UTC().Hour()
	post.PostHour = &hour

	if draft == nil {
		err = s.postRepo.Create(ctx, post)
	} else {
		err = s.postRepo.Save(ctx, post)
	}
	if err != nil {
		// 帖子已发出去，本地记录失败只告警，不让调用方重发
		log.ErrorContext(ctx, "发布成功但本地落库失败", "urn", result.PostURN, "err", err)
		return nil, err
	}

	log.InfoContext(ctx, "发布完成", "post_id", post.ID, "urn", result.PostURN)
	return &dto.PublishResultDTO{
		PostID:         post.ID,
		LinkedinPostID: result.ActivityID,
		PostURL:        result.PostURL,
	}, nil
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
