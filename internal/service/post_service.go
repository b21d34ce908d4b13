package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PostService interface {
	ListPosts(ctx context.Context, page, pageSize int) (*dto.PostListDTO, error)
	GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error)
	CreateDraft(ctx context.Context, draft *dto.DraftBaseDTO) (*dto.PostDTO, error)
	UpdateDraft(ctx context.Context, postID uint64, draft *dto.DraftBaseDTO) error
	DeleteDraft(ctx context.Context, postID uint64) error
	ListDrafts(ctx context.Context) ([]*dto.PostDTO, error)
	UpdateCohorts(ctx context.Context, postID uint64, patch *dto.PostPatchDTO) error
}

type postServiceImpl struct {
	postRepo            repository.PostRepo
	postDemographicRepo repository.PostDemographicRepo
}

func NewPostService(postRepo repository.PostRepo, postDemographicRepo repository.PostDemographicRepo) PostService {
	return &postServiceImpl{
		postRepo:            postRepo,
		postDemographicRepo: postDemographicRepo,
	}
}

func (s *postServiceImpl) ListPosts(ctx context.Context, page, pageSize int) (*dto.PostListDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	posts, total, err := s.postRepo.ListPosts(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return &dto.PostListDTO{Posts: out, Total: total}, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return nil, ErrPostNotFound
	}
	d := toPostDTO(post)
	for _, demo := range post.Demographics {
		d.Demographics = append(d.Demographics, &dto.PostDemographicDTO{
			Category:   demo.Category,
			Value:      demo.Value,
			Percentage: demo.Percentage,
		})
	}
	return d, nil
}

// CreateDraft 新建草稿。DraftID 取 uuid 前八位作短句柄
func (s *postServiceImpl) CreateDraft(ctx context.Context, draft *dto.DraftBaseDTO) (*dto.PostDTO, error) {
	postDate := util.GetMidnight(time.Now())
	if draft.PostDate != nil {
		d, err := time.Parse("2006-01-02", *draft.PostDate)
		if err != nil {
			return nil, ErrParamInvalid
		}
		postDate = util.GetMidnight(d)
	}

	status := model.PostStatusDraft
	draftID := uuid.NewString()[:8]
	post := &model.Post{
		DraftID:  &draftID,
		Title:    util.PtrString(draft.Title),
		Content:  util.PtrString(draft.Content),
		PostDate: postDate,
		Topic:    draft.Topic,
		Status:   &status,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) UpdateDraft(ctx context.Context, postID uint64, draft *dto.DraftBaseDTO) error {
	post, err := s.getDraft(ctx, postID)
	if err != nil {
		return err
	}
	post.Title = util.PtrString(draft.Title)
	post.Content = util.PtrString(draft.Content)
	if draft.PostDate != nil {
		d, err := time.Parse("2006-01-02", *draft.PostDate)
		if err != nil {
			return ErrParamInvalid
		}
		post.PostDate = util.GetMidnight(d)
	}
	if draft.Topic != nil {
		post.Topic = draft.Topic
	}
	return s.postRepo.Save(ctx, post)
}

// DeleteDraft 只允许删除草稿，已发布或已关联分析数据的帖子不可删
func (s *postServiceImpl) DeleteDraft(ctx context.Context, postID uint64) error {
	if _, err := s.getDraft(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *postServiceImpl) ListDrafts(ctx context.Context) ([]*dto.PostDTO, error) {
	drafts, err := s.postRepo.ListByStatus(ctx, model.PostStatusDraft)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PostDTO, 0, len(drafts))
	for _, p := range drafts {
		out = append(out, toPostDTO(p))
	}
	return out, nil
}

// UpdateCohorts 人工标注归因维度，nil 字段保持不动
func (s *postServiceImpl) UpdateCohorts(ctx context.Context, postID uint64, patch *dto.PostPatchDTO) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return ErrPostNotFound
	}
	if patch.Topic != nil {
		post.Topic = patch.Topic
	}
	if patch.ContentFormat != nil {
		post.ContentFormat = patch.ContentFormat
	}
	if patch.HookStyle != nil {
		post.HookStyle = patch.HookStyle
	}
	if patch.LengthBucket != nil {
		post.LengthBucket = patch.LengthBucket
	}
	return s.postRepo.Save(ctx, post)
}

func (s *postServiceImpl) getDraft(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status == nil || *post.Status != model.PostStatusDraft {
		return nil, ErrDraftNotFound
	}
	return post, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	var d dto.PostDTO
	_ = copier.Copy(&d, post)
	d.Title = post.DisplayTitle()
	d.PostDate = post.PostDate.Format("2006-01-02")
	d.WeightedScore = post.WeightedScore()
	d.Demographics = nil
	return &d
}
