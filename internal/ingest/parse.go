package ingest

import (
	"fmt"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
)

// ParseAggregateExport 解析聚合多表导出。
// 缺表只降级为告警，单表内部也只跳行，绝不中断整个文件
func ParseAggregateExport(wb *Workbook, snapshotDate time.Time) *ParsedExport {
	result := &ParsedExport{DiscoveryTotals: map[string]int{}}

	if g, ok := wb.Sheet(SheetDiscovery); ok {
		result.DiscoveryTotals = parseDiscoverySheet(g, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetDiscovery))
	}

	if g, ok := wb.Sheet(SheetEngagement); ok {
		result.DailyMetrics = parseEngagementSheet(g, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetEngagement))
	}

	if g, ok := wb.Sheet(SheetTopPosts); ok {
		result.Posts = parseTopPostsSheet(g, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetTopPosts))
	}

	if g, ok := wb.Sheet(SheetFollowers); ok {
		result.FollowerSnapshots = parseFollowersSheet(g, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetFollowers))
	}

	if g, ok := wb.Sheet(SheetDemographics); ok {
		result.DemographicSnapshots = parseDemographicsSheet(g, snapshotDate, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetDemographics))
	}

	log.Info("聚合导出解析完成",
		"posts", len(result.Posts),
		"daily_metrics", len(result.DailyMetrics),
		"follower_snapshots", len(result.FollowerSnapshots),
		"demographics", len(result.DemographicSnapshots),
		"warnings", len(result.Warnings),
	)
	return result
}

// ParsePerPostExport 解析单帖导出，产出恰好一条帖子记录及其受众分布
func ParsePerPostExport(wb *Workbook) (*ParsedExport, error) {
	g, ok := wb.Sheet(SheetPerformance)
	if !ok {
		return nil, errors.New("单帖导出缺少 PERFORMANCE 表")
	}

	kv := parsePerPostPerformance(g)
	rec, err := buildPerPostRecord(kv)
	if err != nil {
		return nil, err
	}

	result := &ParsedExport{Posts: []PostRecord{rec}}

	if dg, ok := wb.Sheet(SheetTopDemographics); ok {
		result.PostDemographics = parsePerPostDemographics(dg, &result.Warnings)
	} else {
		result.Warnings = append(result.Warnings, missingSheetWarning(SheetTopDemographics))
	}

	log.Info("单帖导出解析完成",
		"linkedin_post_id", derefOr(rec.LinkedinPostID, "<none>"),
		"post_date", rec.PostDate.Format("2006-01-02"),
		"demographics", len(result.PostDemographics),
	)
	return result, nil
}

func missingSheetWarning(name string) string {
	return fmt.Sprintf("缺少 %s 表", name)
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
