package service

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/consts"
	"Beacon/internal/pkg/redis"
	"Beacon/internal/pkg/util"
	"Beacon/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const analyticsCacheTTL = 10 * time.Minute

type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.OverviewDTO, error)
	TimeSeries(ctx context.Context, from, to time.Time) ([]*dto.TimeSeriesPointDTO, error)
	EngagementTrend(ctx context.Context, days int) (*dto.TrendDTO, error)
	Cohorts(ctx context.Context, dimension string) (*dto.CohortsDTO, error)
	FollowerTrend(ctx context.Context, from, to time.Time) ([]*dto.FollowerPointDTO, error)
	Demographics(ctx context.Context) ([]*dto.DemographicDTO, error)
}

type analyticsServiceImpl struct {
	postRepo        repository.PostRepo
	dailyMetricRepo repository.DailyMetricRepo
	followerRepo    repository.FollowerSnapshotRepo
	demographicRepo repository.DemographicSnapshotRepo
}

func NewAnalyticsService(
	postRepo repository.PostRepo,
	dailyMetricRepo repository.DailyMetricRepo,
	followerRepo repository.FollowerSnapshotRepo,
	demographicRepo repository.DemographicSnapshotRepo,
) AnalyticsService {
	return &analyticsServiceImpl{
		postRepo:        postRepo,
		dailyMetricRepo: dailyMetricRepo,
		followerRepo:    followerRepo,
		demographicRepo: demographicRepo,
	}
}

func (s *analyticsServiceImpl) Overview(ctx context.Context) (*dto.OverviewDTO, error) {
	if cached, err := redis.GetValue(ctx, consts.AnalyticsOverviewKey); err == nil && cached != "" {
		var overview dto.OverviewDTO
		if json.Unmarshal([]byte(cached), &overview) == nil {
			return &overview, nil
		}
	}

	posts, err := s.postRepo.ListAllByDate(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.OverviewDTO{}
	var rateSum float64
	var rated int
	for _, p := range posts {
		if p.Status != nil && *p.Status == model.PostStatusDraft {
			continue
		}
		overview.TotalPosts++
		overview.TotalImpressions += p.Impressions
		overview.TotalReactions += p.Reactions
		overview.TotalComments += p.Comments
		overview.TotalShares += p.Shares
		if p.Impressions > 0 {
			rateSum += p.EngagementRate
			rated++
		}
	}
	if rated > 0 {
		overview.AvgEngagementRate = round6(rateSum / float64(rated))
	}

	latest, err := s.followerRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		overview.TotalFollowers = latest.TotalFollowers
	}

	s.cache(ctx, consts.AnalyticsOverviewKey, overview)
	return overview, nil
}

func (s *analyticsServiceImpl) TimeSeries(ctx context.Context, from, to time.Time) ([]*dto.TimeSeriesPointDTO, error) {
	metrics, err := s.dailyMetricRepo.ListAccountLevel(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TimeSeriesPointDTO, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, &dto.TimeSeriesPointDTO{
			Date:        m.MetricDate.Format("2006-01-02"),
			Impressions: m.Impressions,
			Engagements: m.Engagements,
		})
	}
	return out, nil
}

// EngagementTrend 按发帖顺序的互动率曲线。滚动均值窗口不足时取现有帖子，
// 头部阈值取第 90 百分位
func (s *analyticsServiceImpl) EngagementTrend(ctx context.Context, days int) (*dto.TrendDTO, error) {
	if days < 30 {
		days = 365
	}
	cutoff := util.GetMidnight(time.Now()).AddDate(0, 0, -days)
	posts, err := s.postRepo.ListSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	posts = excludeDrafts(posts)

	rates := make([]float64, len(posts))
	for i, p := range posts {
		rates[i] = p.EngagementRate
	}
	rolling := rollingAverage(rates, consts.RollingWindowSize)

	points := make([]*dto.RollingPointDTO, 0, len(posts))
	for i, p := range posts {
		points = append(points, &dto.RollingPointDTO{
			PostID:         p.ID,
			PostDate:       p.PostDate.Format("2006-01-02"),
			Title:          p.DisplayTitle(),
			EngagementRate: round6(p.EngagementRate),
			WeightedScore:  round6(p.WeightedScore()),
			RollingAvg:     rolling[i],
			Impressions:    p.Impressions,
		})
	}

	last30Cutoff := util.GetMidnight(time.Now()).AddDate(0, 0, -30)
	var last30 []*model.Post
	for _, p := range posts {
		if !p.PostDate.Before(last30Cutoff) {
			last30 = append(last30, p)
		}
	}

	return &dto.TrendDTO{
		Points:          points,
		MonthlyMedians:  monthlyMedians(posts),
		TopTenThreshold: round6(topQuantileThreshold(rates)),
		Baseline:        periodStat(posts),
		Last30Days:      periodStat(last30),
		PeriodDays:      days,
	}, nil
}

// Cohorts 按人工标注维度分组，维度为空的帖子不参与
func (s *analyticsServiceImpl) Cohorts(ctx context.Context, dimension string) (*dto.CohortsDTO, error) {
	extract, ok := cohortExtractors[dimension]
	if !ok {
		return nil, ErrParamInvalid
	}
	posts, err := s.postRepo.ListAllByDate(ctx)
	if err != nil {
		return nil, err
	}
	posts = excludeDrafts(posts)

	byValue := make(map[string][]*model.Post)
	for _, p := range posts {
		value, ok := extract(p)
		if !ok {
			continue
		}
		byValue[value] = append(byValue[value], p)
	}

	values := make([]string, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Strings(values)

	cohorts := make([]*dto.CohortStatDTO, 0, len(values))
	for _, value := range values {
		group := byValue[value]
		var rateSum, wsSum float64
		rates := make([]float64, 0, len(group))
		best := group[0]
		for _, p := range group {
			rateSum += p.EngagementRate
			wsSum += p.WeightedScore()
			rates = append(rates, p.EngagementRate)
			if p.EngagementRate > best.EngagementRate {
				best = p
			}
		}
		cohorts = append(cohorts, &dto.CohortStatDTO{
			Value:             value,
			PostCount:         len(group),
			AvgEngagementRate: round6(rateSum / float64(len(group))),
			AvgWeightedScore:  round6(wsSum / float64(len(group))),
			MedianEngagement:  round6(median(rates)),
			BestPostID:        best.ID,
			BestPostTitle:     best.DisplayTitle(),
		})
	}

	return &dto.CohortsDTO{Dimension: dimension, Cohorts: cohorts}, nil
}

func (s *analyticsServiceImpl) FollowerTrend(ctx context.Context, from, to time.Time) ([]*dto.FollowerPointDTO, error) {
	snapshots, err := s.followerRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FollowerPointDTO, 0, len(snapshots))
	for _, snap := range snapshots {
		out = append(out, &dto.FollowerPointDTO{
			Date:           snap.SnapshotDate.Format("2006-01-02"),
			TotalFollowers: snap.TotalFollowers,
			NewFollowers:   snap.NewFollowers,
		})
	}
	return out, nil
}

// Demographics 最近一次快照的受众分布
func (s *analyticsServiceImpl) Demographics(ctx context.Context) ([]*dto.DemographicDTO, error) {
	latest, err := s.demographicRepo.LatestSnapshotDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest.IsZero() {
		return []*dto.DemographicDTO{}, nil
	}
	snapshots, err := s.demographicRepo.ListByDate(ctx, latest)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DemographicDTO, 0, len(snapshots))
	for _, snap := range snapshots {
		out = append(out, &dto.DemographicDTO{
			Category:   snap.Category,
			Value:      snap.Value,
			Percentage: snap.Percentage,
		})
	}
	return out, nil
}

func (s *analyticsServiceImpl) cache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := redis.SetWithExpiration(ctx, key, string(data), analyticsCacheTTL); err != nil {
		log.WarnContext(ctx, "分析缓存写入失败", "key", key, "err", err)
	}
}

var cohortExtractors = map[string]func(*model.Post) (string, bool){
	consts.CohortTopic:         func(p *model.Post) (string, bool) { return derefNonEmpty(p.Topic) },
	consts.CohortContentFormat: func(p *model.Post) (string, bool) { return derefNonEmpty(p.ContentFormat) },
	consts.CohortHookStyle:     func(p *model.Post) (string, bool) { return derefNonEmpty(p.HookStyle) },
	consts.CohortLengthBucket:  func(p *model.Post) (string, bool) { return derefNonEmpty(p.LengthBucket) },
}

func derefNonEmpty(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

func excludeDrafts(posts []*model.Post) []*model.Post {
	out := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Status != nil && *p.Status == model.PostStatusDraft {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rollingAverage 前 N 个点窗口不足时对已有点求均值
func rollingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		for _, v := range values[start : i+1] {
			sum += v
		}
		out[i] = round6(sum / float64(i+1-start))
	}
	return out
}

// topQuantileThreshold 第 90 百分位的互动率
func topQuantileThreshold(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	sorted := append([]float64(nil), rates...)
	sort.Float64s(sorted)
	idx := int(math.Ceil(float64(len(sorted))*(1-consts.TopPerformerQuantile))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func monthlyMedians(posts []*model.Post) []*dto.MonthlyMedianDTO {
	byMonth := make(map[string][]*model.Post)
	for _, p := range posts {
		key := p.PostDate.Format("2006-01")
		byMonth[key] = append(byMonth[key], p)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]*dto.MonthlyMedianDTO, 0, len(months))
	for _, m := range months {
		group := byMonth[m]
		rates := make([]float64, 0, len(group))
		scores := make([]float64, 0, len(group))
		for _, p := range group {
			rates = append(rates, p.EngagementRate)
			scores = append(scores, p.WeightedScore())
		}
		out = append(out, &dto.MonthlyMedianDTO{
			Month:               m,
			PostCount:           len(group),
			MedianEngagement:    round6(median(rates)),
			MedianWeightedScore: round6(median(scores)),
		})
	}
	return out
}

func periodStat(posts []*model.Post) *dto.PeriodStatDTO {
	stat := &dto.PeriodStatDTO{PostCount: len(posts)}
	if len(posts) == 0 {
		return stat
	}
	var rateSum, wsSum float64
	for _, p := range posts {
		rateSum += p.EngagementRate
		wsSum += p.WeightedScore()
	}
	stat.AvgEngagementRate = round6(rateSum / float64(len(posts)))
	stat.AvgWeightedScore = round6(wsSum / float64(len(posts)))
	return stat
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
