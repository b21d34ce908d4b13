package repository

import (
	"Beacon/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo interface {
	// 四级匹配查询，导入事务内带行锁，保证并发导入下 max-wins 不丢更新
	FindByLinkedinID(ctx context.Context, linkedinPostID string) (*model.Post, error)
	FindByDateAndTitle(ctx context.Context, date time.Time, title string) (*model.Post, error)
	FindUntitledByDate(ctx context.Context, date time.Time) (*model.Post, error)
	FindByDate(ctx context.Context, date time.Time) (*model.Post, error)

	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error)
	ListAllByDate(ctx context.Context) ([]*model.Post, error)
	ListSince(ctx context.Context, cutoff time.Time) ([]*model.Post, error)
	ListByStatus(ctx context.Context, status string) ([]*model.Post, error)
	Delete(ctx context.Context, id uint64) error
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (r *postRepoImpl) lockedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *postRepoImpl) FindByLinkedinID(ctx context.Context, linkedinPostID string) (*model.Post, error) {
	var post model.Post
	err := r.lockedQuery(ctx).Where("linkedin_post_id = ?", linkedinPostID).First(&post).Error
	return firstOrNil(&post, err)
}

func (r *postRepoImpl) FindByDateAndTitle(ctx context.Context, date time.Time, title string) (*model.Post, error) {
	var post model.Post
	err := r.lockedQuery(ctx).Where("post_date = ? AND title = ?", date, title).First(&post).Error
	return firstOrNil(&post, err)
}

func (r *postRepoImpl) FindUntitledByDate(ctx context.Context, date time.Time) (*model.Post, error) {
	var post model.Post
	err := r.lockedQuery(ctx).Where("post_date = ? AND title IS NULL", date).First(&post).Error
	return firstOrNil(&post, err)
}

func (r *postRepoImpl) FindByDate(ctx context.Context, date time.Time) (*model.Post, error) {
	var post model.Post
	err := r.lockedQuery(ctx).Where("post_date = ?", date).First(&post).Error
	return firstOrNil(&post, err)
}

func (r *postRepoImpl) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepoImpl) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Preload("Demographics").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, int64, error) {
	posts := make([]*model.Post, 0)
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Order("post_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepoImpl) ListAllByDate(ctx context.Context) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).Order("post_date ASC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) ListSince(ctx context.Context, cutoff time.Time) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("post_date >= ?", cutoff).
		Order("post_date ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) ListByStatus(ctx context.Context, status string) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("updated_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func firstOrNil(post *model.Post, err error) (*model.Post, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}
