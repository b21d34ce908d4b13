package model

import (
	"fmt"
	"time"
)

const (
	PostStatusDraft           = "draft"
	PostStatusPublished       = "published"
	PostStatusAnalyticsLinked = "analytics_linked"
)

type Post struct {
	ID             uint64     `gorm:"primaryKey"`
	LinkedinPostID *string    `gorm:"type:varchar(64);uniqueIndex" json:"linkedin_post_id"`
	PostURL        *string    `gorm:"type:varchar(512)" json:"post_url"`
	DraftID        *string    `gorm:"type:varchar(20)" json:"draft_id"`
	Title          *string    `gorm:"type:varchar(100)" json:"title"`
	PostDate       time.Time  `gorm:"not null;index:idx_post_date" json:"post_date"`
	PostType       *string    `gorm:"type:varchar(30)" json:"post_type"`
	Content        *string    `gorm:"type:text" json:"content"`
	Status         *string    `gorm:"type:varchar(20)" json:"status"` // draft / published / analytics_linked，导入创建的帖子为 NULL
	Impressions    int        `gorm:"not null;default:0" json:"impressions"`
	MembersReached int        `gorm:"not null;default:0" json:"members_reached"`
	Reactions      int        `gorm:"not null;default:0" json:"reactions"`
	Comments       int        `gorm:"not null;default:0" json:"comments"`
	Shares         int        `gorm:"not null;default:0" json:"shares"`
	Clicks         int        `gorm:"not null;default:0" json:"clicks"`
	EngagementRate float64    `gorm:"not null;default:0" json:"engagement_rate"`
	Saves          int        `gorm:"not null;default:0" json:"saves"`
	Sends          int        `gorm:"not null;default:0" json:"sends"`
	ProfileViews   int        `gorm:"not null;default:0" json:"profile_views"`
	FollowersGained int       `gorm:"not null;default:0" json:"followers_gained"`
	Reposts        int        `gorm:"not null;default:0" json:"reposts"`
	Topic          *string    `gorm:"type:varchar(50)" json:"topic"`
	ContentFormat  *string    `gorm:"type:varchar(30)" json:"content_format"`
	HookStyle      *string    `gorm:"type:varchar(30)" json:"hook_style"`
	LengthBucket   *string    `gorm:"type:varchar(20)" json:"length_bucket"`
	PostHour       *int       `json:"post_hour"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// 关联关系
	DailyMetrics []DailyMetric    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Demographics []PostDemographic `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// RecalculateEngagementRate 由原始计数重新计算互动率，合并指标后必须调用
func (p *Post) RecalculateEngagementRate() {
	if p.Impressions > 0 {
		p.EngagementRate = float64(p.Reactions+p.Comments+p.Shares) / float64(p.Impressions)
	} else {
		p.EngagementRate = 0
	}
}

// WeightedScore 质量加权互动分。评论权重 3，转发权重 4
func (p *Post) WeightedScore() float64 {
	if p.Impressions == 0 {
		return 0
	}
	return float64(1*p.Reactions+3*p.Comments+4*p.Shares) / float64(p.Impressions)
}

// DisplayTitle 展示用标题，缺失时按 draft_id / 日期回退
func (p *Post) DisplayTitle() string {
	if p.Title != nil && *p.Title != "" {
		return *p.Title
	}
	if p.DraftID != nil && *p.DraftID != "" {
		return fmt.Sprintf("#%s (%s)", *p.DraftID, p.PostDate.Format("2006-01-02"))
	}
	if p.LinkedinPostID != nil && len(*p.LinkedinPostID) >= 6 {
		id := *p.LinkedinPostID
		return fmt.Sprintf("Post %s (#%s)", p.PostDate.Format("2006-01-02"), id[len(id)-6:])
	}
	return fmt.Sprintf("Post %s", p.PostDate.Format("2006-01-02"))
}
