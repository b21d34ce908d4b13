package ingest

import (
	"time"
)

// PostRecord 解析出的帖子记录，按来源格式携带不同的字段子集
type PostRecord struct {
	LinkedinPostID *string
	PostURL        *string
	Title          *string
	PostDate       time.Time
	PostType       *string
	PostHour       *int

	Impressions    int
	MembersReached int
	Reactions      int
	Comments       int
	Shares         int
	Clicks         int

	// 聚合表只给合计互动数，没有分项
	Engagements    int
	EngagementRate float64
	// 是否携带分项计数（reactions/comments/shares），决定互动率如何重算
	HasComponents bool

	// 仅单帖导出提供的扩展指标
	Saves           int
	Sends           int
	ProfileViews    int
	FollowersGained int
	Reposts         int

	Source ExportFormat
}

// DailyMetricRecord 账号级或帖子级单日指标
type DailyMetricRecord struct {
	MetricDate     time.Time
	Impressions    int
	Engagements    int
	MembersReached int
}

type FollowerRecord struct {
	SnapshotDate   time.Time
	TotalFollowers int
	NewFollowers   int
}

type DemographicRecord struct {
	SnapshotDate time.Time
	Category     string
	Value        string
	Percentage   float64
}

type PostDemographicRecord struct {
	Category   string
	Value      string
	Percentage float64
}

// ParsedExport 一次解析的全部产物，Warnings 承载行级降级信息
type ParsedExport struct {
	Posts                []PostRecord
	DailyMetrics         []DailyMetricRecord
	FollowerSnapshots    []FollowerRecord
	DemographicSnapshots []DemographicRecord
	PostDemographics     []PostDemographicRecord
	DiscoveryTotals      map[string]int
	Warnings             []string
}
