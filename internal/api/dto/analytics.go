package dto

// OverviewDTO 账号总览
type OverviewDTO struct {
	TotalPosts        int     `json:"total_posts"`
	TotalImpressions  int     `json:"total_impressions"`
	TotalReactions    int     `json:"total_reactions"`
	TotalComments     int     `json:"total_comments"`
	TotalShares       int     `json:"total_shares"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	TotalFollowers    int     `json:"total_followers"`
}

// TimeSeriesPointDTO 账号级单日指标
type TimeSeriesPointDTO struct {
	Date        string `json:"date"`
	Impressions int    `json:"impressions"`
	Engagements int    `json:"engagements"`
}

// RollingPointDTO 按发帖顺序的滚动均值点
type RollingPointDTO struct {
	PostID         uint64  `json:"post_id"`
	PostDate       string  `json:"post_date"`
	Title          string  `json:"title"`
	EngagementRate float64 `json:"engagement_rate"`
	WeightedScore  float64 `json:"weighted_score"`
	RollingAvg     float64 `json:"rolling_avg_5"`
	Impressions    int     `json:"impressions"`
}

// PeriodStatDTO 一段时间内的平均表现
type PeriodStatDTO struct {
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgWeightedScore  float64 `json:"avg_weighted_score"`
	PostCount         int     `json:"post_count"`
}

// TrendDTO 互动趋势：滚动均值曲线、月度中位数、头部阈值与基线对比
type TrendDTO struct {
	Points          []*RollingPointDTO  `json:"posts"`
	MonthlyMedians  []*MonthlyMedianDTO `json:"monthly_medians"`
	TopTenThreshold float64             `json:"top_10pct_threshold"`
	Baseline        *PeriodStatDTO      `json:"baseline"`
	Last30Days      *PeriodStatDTO      `json:"last_30d"`
	PeriodDays      int                 `json:"period_days"`
}

// MonthlyMedianDTO 月度中位指标
type MonthlyMedianDTO struct {
	Month               string  `json:"month"`
	PostCount           int     `json:"post_count"`
	MedianEngagement    float64 `json:"median_engagement_rate"`
	MedianWeightedScore float64 `json:"median_weighted_score"`
}

// CohortStatDTO 按标注维度分组的统计
type CohortStatDTO struct {
	Value             string  `json:"value"`
	PostCount         int     `json:"post_count"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgWeightedScore  float64 `json:"avg_weighted_score"`
	MedianEngagement  float64 `json:"median_engagement_rate"`
	BestPostID        uint64  `json:"best_post_id"`
	BestPostTitle     string  `json:"best_post_title"`
}

// CohortsDTO 维度及其分组统计
type CohortsDTO struct {
	Dimension string           `json:"dimension"`
	Cohorts   []*CohortStatDTO `json:"cohorts"`
}

// FollowerPointDTO 粉丝数时间序列点
type FollowerPointDTO struct {
	Date           string `json:"date"`
	TotalFollowers int    `json:"total_followers"`
	NewFollowers   int    `json:"new_followers"`
}

// DemographicDTO 账号受众分布条目
type DemographicDTO struct {
	Category   string  `json:"category"`
	Value      string  `json:"value"`
	Percentage float64 `json:"percentage"`
}
