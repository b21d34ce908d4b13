package ingest

import (
	"strings"

	"github.com/pkg/errors"
)

// 单帖导出 PERFORMANCE 表用到的标签
const (
	labelPostURL         = "Post URL"
	labelPostDate        = "Post Date"
	labelPostPublishTime = "Post Publish Time"
	labelImpressions     = "Impressions"
	labelMembersReached  = "Members reached"
	labelReactions       = "Reactions"
	labelComments        = "Comments"
	labelReposts         = "Reposts"
	labelSaves           = "Saves"
	labelSends           = "Sends on LinkedIn"
	labelProfileViews    = "Profile viewers from this post"
	labelFollowersGained = "Followers gained from this post"
)

// parsePerPostPerformance 解析 PERFORMANCE 表。
// 不是表格而是前两列的标签/取值对，全部收进 map 再按标签取用
func parsePerPostPerformance(g Grid) map[string]string {
	kv := make(map[string]string)
	for row := 1; row <= g.Rows(); row++ {
		label := strings.TrimSpace(g.At(row, 1).String())
		value := strings.TrimSpace(g.At(row, 2).String())
		if label == "" || value == "" {
			continue
		}
		kv[label] = value
	}
	return kv
}

// parsePerPostDemographics 解析 TOP DEMOGRAPHICS 表，表头固定在第 1 行。
// 类目规范化为小写下划线键，例如 "Company size" -> "company_size"
func parsePerPostDemographics(g Grid, warnings *[]string) []PostDemographicRecord {
	var records []PostDemographicRecord
	for row := 2; row <= g.Rows(); row++ {
		category := strings.TrimSpace(g.At(row, 1).String())
		value := strings.TrimSpace(g.At(row, 2).String())
		if category == "" || value == "" {
			continue
		}
		records = append(records, PostDemographicRecord{
			Category:   normalizeCategory(category),
			Value:      value,
			Percentage: CoercePercentage(g.At(row, 3)),
		})
	}
	if len(records) == 0 {
		*warnings = append(*warnings, "TOP DEMOGRAPHICS 表没有解析出任何受众记录")
	}
	return records
}

func normalizeCategory(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
}

// buildPerPostRecord 把 PERFORMANCE 的标签映射拼装成帖子记录。
// 单帖导出是单主体文件，URL 或日期缺失没有逐行跳过的余地，直接判为解析失败
func buildPerPostRecord(kv map[string]string) (PostRecord, error) {
	rawURL, ok := kv[labelPostURL]
	if !ok || rawURL == "" {
		return PostRecord{}, errors.New("PERFORMANCE 表缺少 Post URL")
	}

	date, ok := CoerceDate(TextCell(kv[labelPostDate]))
	if !ok {
		return PostRecord{}, errors.Errorf("PERFORMANCE 表的 Post Date 无法解析: %q", kv[labelPostDate])
	}

	rec := PostRecord{
		PostURL:         &rawURL,
		PostDate:        date,
		PostHour:        ParsePostHour(kv[labelPostPublishTime]),
		Impressions:     parseIntWithCommas(kv[labelImpressions], 0),
		MembersReached:  parseIntWithCommas(kv[labelMembersReached], 0),
		Reactions:       parseIntWithCommas(kv[labelReactions], 0),
		Comments:        parseIntWithCommas(kv[labelComments], 0),
		Reposts:         parseIntWithCommas(kv[labelReposts], 0),
		Saves:           parseIntWithCommas(kv[labelSaves], 0),
		Sends:           parseIntWithCommas(kv[labelSends], 0),
		ProfileViews:    parseIntWithCommas(kv[labelProfileViews], 0),
		FollowersGained: parseIntWithCommas(kv[labelFollowersGained], 0),
		HasComponents:   true,
		Source:          FormatPerPost,
	}
	// 单帖导出的 Reposts 同时充当转发计数
	rec.Shares = rec.Reposts

	if urn, ok := ExtractURN(rawURL); ok {
		rec.LinkedinPostID = &urn
	}

	if rec.Impressions > 0 {
		rec.EngagementRate = float64(rec.Reactions+rec.Comments+rec.Shares) / float64(rec.Impressions)
	}
	return rec, nil
}
