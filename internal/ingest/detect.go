package ingest

// ExportFormat 导出文件格式分类
type ExportFormat string

const (
	FormatAggregate ExportFormat = "aggregate"
	FormatPerPost   ExportFormat = "per_post"
	FormatUnknown   ExportFormat = "unknown"
)

// 导出文件中预期的表名（规范化后）
const (
	SheetDiscovery       = "DISCOVERY"
	SheetEngagement      = "ENGAGEMENT"
	SheetTopPosts        = "TOP POSTS"
	SheetFollowers       = "FOLLOWERS"
	SheetDemographics    = "DEMOGRAPHICS"
	SheetPerformance     = "PERFORMANCE"
	SheetTopDemographics = "TOP DEMOGRAPHICS"
)

// DetectFormat 按表名集合判定导出格式。
// 单帖导出同时含 PERFORMANCE 和 TOP DEMOGRAPHICS；
// 聚合导出同时含 DISCOVERY 和 ENGAGEMENT；其余视为未知
func DetectFormat(wb *Workbook) ExportFormat {
	if wb.HasSheet(SheetPerformance) && wb.HasSheet(SheetTopDemographics) {
		return FormatPerPost
	}
	if wb.HasSheet(SheetDiscovery) && wb.HasSheet(SheetEngagement) {
		return FormatAggregate
	}
	return FormatUnknown
}
