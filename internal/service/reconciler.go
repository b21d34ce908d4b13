package service

import (
	"Beacon/internal/ingest"
	"Beacon/internal/model"
	"Beacon/internal/repository"
	"context"
	"fmt"
	log "log/slog"
)

// ImportStats 单次导入各实体的写入计数，以及落库阶段降级产生的告警
type ImportStats struct {
	PostsCreated         int      `json:"posts_created"`
	PostsUpdated         int      `json:"posts_updated"`
	DailyMetrics         int      `json:"daily_metrics"`
	FollowerSnapshots    int      `json:"follower_snapshots"`
	DemographicSnapshots int      `json:"demographic_snapshots"`
	PostDemographics     int      `json:"post_demographics"`
	Warnings             []string `json:"warnings,omitempty"`
}

func (s *ImportStats) TotalRecords() int {
	return s.PostsCreated + s.PostsUpdated + s.DailyMetrics +
		s.FollowerSnapshots + s.DemographicSnapshots + s.PostDemographics
}

// warn 单条记录失败降级为告警，剩余记录照常处理
func (s *ImportStats) warn(ctx context.Context, entity string, idx int, err error) {
	log.WarnContext(ctx, "记录写入失败", "entity", entity, "index", idx, "err", err)
	s.Warnings = append(s.Warnings, fmt.Sprintf("%s记录 #%d 写入失败: %v", entity, idx+1, err))
}

// Reconciler 把解析出的记录落到已有实体上：先按四级顺序找归属，再按
// max-wins / 覆盖 / 补空的策略合并。必须在同一事务内调用
type Reconciler struct {
	postRepo            repository.PostRepo
	dailyMetricRepo     repository.DailyMetricRepo
	followerRepo        repository.FollowerSnapshotRepo
	demographicRepo     repository.DemographicSnapshotRepo
	postDemographicRepo repository.PostDemographicRepo
}

func NewReconciler(
	postRepo repository.PostRepo,
	dailyMetricRepo repository.DailyMetricRepo,
	followerRepo repository.FollowerSnapshotRepo,
	demographicRepo repository.DemographicSnapshotRepo,
	postDemographicRepo repository.PostDemographicRepo,
) *Reconciler {
	return &Reconciler{
		postRepo:            postRepo,
		dailyMetricRepo:     dailyMetricRepo,
		followerRepo:        followerRepo,
		demographicRepo:     demographicRepo,
		postDemographicRepo: postDemographicRepo,
	}
}

// Apply 把整份解析结果写入存储，返回写入计数。单条记录写入失败只降级
// 为告警，不中断导入，已成功的记录照常提交
func (r *Reconciler) Apply(ctx context.Context, parsed *ingest.ParsedExport) (*ImportStats, error) {
	stats := &ImportStats{}

	var lastPost *model.Post
	for i := range parsed.Posts {
		rec := &parsed.Posts[i]
		post, created, err := r.reconcilePost(ctx, rec)
		if err != nil {
			stats.warn(ctx, "帖子", i, err)
			continue
		}
		if created {
			stats.PostsCreated++
		} else {
			stats.PostsUpdated++
		}
		lastPost = post
	}

	for i := range parsed.DailyMetrics {
		rec := &parsed.DailyMetrics[i]
		metric := &model.DailyMetric{
			MetricDate:     rec.MetricDate,
			Impressions:    rec.Impressions,
			Engagements:    rec.Engagements,
			MembersReached: rec.MembersReached,
		}
		if err := r.dailyMetricRepo.UpsertMax(ctx, metric); err != nil {
			stats.warn(ctx, "每日指标", i, err)
			continue
		}
		stats.DailyMetrics++
	}

	for i := range parsed.FollowerSnapshots {
		rec := &parsed.FollowerSnapshots[i]
		snapshot := &model.FollowerSnapshot{
			SnapshotDate:   rec.SnapshotDate,
			TotalFollowers: rec.TotalFollowers,
			NewFollowers:   rec.NewFollowers,
		}
		if err := r.followerRepo.UpsertOverwrite(ctx, snapshot); err != nil {
			stats.warn(ctx, "粉丝快照", i, err)
			continue
		}
		stats.FollowerSnapshots++
	}

	for i := range parsed.DemographicSnapshots {
		rec := &parsed.DemographicSnapshots[i]
		snapshot := &model.DemographicSnapshot{
			SnapshotDate: rec.SnapshotDate,
			Category:     rec.Category,
			Value:        rec.Value,
			Percentage:   rec.Percentage,
		}
		if err := r.demographicRepo.UpsertOverwrite(ctx, snapshot); err != nil {
			stats.warn(ctx, "受众快照", i, err)
			continue
		}
		stats.DemographicSnapshots++
	}

	// 单帖导出的受众分布挂在该次导出唯一的帖子上
	if len(parsed.PostDemographics) > 0 && lastPost != nil {
		for i := range parsed.PostDemographics {
			rec := &parsed.PostDemographics[i]
			demo := &model.PostDemographic{
				PostID:     lastPost.ID,
				Category:   rec.Category,
				Value:      rec.Value,
				Percentage: rec.Percentage,
			}
			if err := r.postDemographicRepo.UpsertOverwrite(ctx, demo); err != nil {
				stats.warn(ctx, "帖子受众", i, err)
				continue
			}
			stats.PostDemographics++
		}
	}

	for label, total := range parsed.DiscoveryTotals {
		log.InfoContext(ctx, "账号级总览指标", "label", label, "value", total)
	}

	return stats, nil
}

// reconcilePost 按四级顺序找归属帖子，找到就合并，找不到就新建
func (r *Reconciler) reconcilePost(ctx context.Context, rec *ingest.PostRecord) (*model.Post, bool, error) {
	post, err := r.matchPost(ctx, rec)
	if err != nil {
		return nil, false, err
	}
	if post == nil {
		post = newPostFromRecord(rec)
		if err := r.postRepo.Create(ctx, post); err != nil {
			return nil, false, err
		}
		return post, true, nil
	}
	applyPostRecord(post, rec)
	if err := r.postRepo.Save(ctx, post); err != nil {
		return nil, false, err
	}
	return post, false, nil
}

// matchPost 四级匹配。级别间严格有序，命中即停：
//  1. linkedin_post_id 精确匹配
//  2. 日期 + 标题
//  3. 日期 + 无标题（两侧都没有标题才可比）
//  4. 仅日期，只对单帖导出开放（该格式一次只有一条记录，误挂风险可控）
func (r *Reconciler) matchPost(ctx context.Context, rec *ingest.PostRecord) (*model.Post, error) {
	if rec.LinkedinPostID != nil && *rec.LinkedinPostID != "" {
		post, err := r.postRepo.FindByLinkedinID(ctx, *rec.LinkedinPostID)
		if err != nil || post != nil {
			return post, err
		}
	}
	if rec.Title != nil && *rec.Title != "" {
		post, err := r.postRepo.FindByDateAndTitle(ctx, rec.PostDate, *rec.Title)
		if err != nil || post != nil {
			return post, err
		}
	} else {
		post, err := r.postRepo.FindUntitledByDate(ctx, rec.PostDate)
		if err != nil || post != nil {
			return post, err
		}
	}
	if rec.Source == ingest.FormatPerPost {
		return r.postRepo.FindByDate(ctx, rec.PostDate)
	}
	return nil, nil
}

func newPostFromRecord(rec *ingest.PostRecord) *model.Post {
	post := &model.Post{
		LinkedinPostID: rec.LinkedinPostID,
		PostURL:        rec.PostURL,
		Title:          rec.Title,
		PostDate:       rec.PostDate,
		PostType:       rec.PostType,
		PostHour:       rec.PostHour,
		Impressions:    rec.Impressions,
		MembersReached: rec.MembersReached,
		Reactions:      rec.Reactions,
		Comments:       rec.Comments,
		Shares:         rec.Shares,
		Clicks:         rec.Clicks,
	}
	if rec.Source == ingest.FormatPerPost {
		post.Saves = rec.Saves
		post.Sends = rec.Sends
		post.ProfileViews = rec.ProfileViews
		post.FollowersGained = rec.FollowersGained
		post.Reposts = rec.Reposts
	}
	if rec.HasComponents {
		post.RecalculateEngagementRate()
	} else {
		post.EngagementRate = rec.EngagementRate
	}
	return post
}

// applyPostRecord 把一条记录合并进已有帖子。计数器 max-wins；单帖导出
// 独有的扩展指标整体覆盖；身份字段只补空不改写
func applyPostRecord(post *model.Post, rec *ingest.PostRecord) {
	post.Impressions = maxOf(post.Impressions, rec.Impressions)
	post.MembersReached = maxOf(post.MembersReached, rec.MembersReached)
	post.Reactions = maxOf(post.Reactions, rec.Reactions)
	post.Comments = maxOf(post.Comments, rec.Comments)
	post.Shares = maxOf(post.Shares, rec.Shares)
	post.Clicks = maxOf(post.Clicks, rec.Clicks)

	if rec.Source == ingest.FormatPerPost {
		post.Saves = rec.Saves
		post.Sends = rec.Sends
		post.ProfileViews = rec.ProfileViews
		post.FollowersGained = rec.FollowersGained
		post.Reposts = rec.Reposts
		if rec.PostHour != nil {
			post.PostHour = rec.PostHour
		}
	}

	if post.LinkedinPostID == nil && rec.LinkedinPostID != nil {
		post.LinkedinPostID = rec.LinkedinPostID
	}
	if post.PostURL == nil && rec.PostURL != nil {
		post.PostURL = rec.PostURL
	}
	if post.PostType == nil && rec.PostType != nil {
		post.PostType = rec.PostType
	}
	if post.Title == nil && rec.Title != nil {
		post.Title = rec.Title
	}

	// 分项计数齐全时重算互动率，否则只保留更大的那个
	if rec.HasComponents || post.Reactions+post.Comments+post.Shares > 0 {
		post.RecalculateEngagementRate()
	} else if rec.EngagementRate > post.EngagementRate {
		post.EngagementRate = rec.EngagementRate
	}

	// 已发布且带作者正文的帖子在分析数据到达后推进状态；没有正文的
	// 发布记录还没真正走过撰写流程，保持原状
	if post.Status != nil && *post.Status == model.PostStatusPublished &&
		post.Content != nil && *post.Content != "" {
		linked := model.PostStatusAnalyticsLinked
		post.Status = &linked
	}
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
