package ingest

import (
	"strings"
)

// parseEngagementSheet 解析 ENGAGEMENT 时间序列表。
// 表头行以首格 "Date" 识别，之前的行全部忽略；
// 其后每行产出一条账号级单日指标，日期解析失败的行静默跳过
func parseEngagementSheet(g Grid, warnings *[]string) []DailyMetricRecord {
	header := findHeaderRow(g, "date")
	if header == 0 {
		*warnings = append(*warnings, "ENGAGEMENT 表未找到 Date 表头，整表跳过")
		return nil
	}

	var records []DailyMetricRecord
	for row := header + 1; row <= g.Rows(); row++ {
		date, ok := CoerceDate(g.At(row, 1))
		if !ok {
			continue
		}
		records = append(records, DailyMetricRecord{
			MetricDate:  date,
			Impressions: CoerceInt(g.At(row, 2), 0),
			Engagements: CoerceInt(g.At(row, 3), 0),
		})
	}

	if len(records) == 0 {
		*warnings = append(*warnings, "ENGAGEMENT 表没有解析出任何数据行")
	}
	return records
}

// findHeaderRow 返回首格文本等于 want（忽略大小写）的行号，找不到返回 0
func findHeaderRow(g Grid, want string) int {
	for row := 1; row <= g.Rows(); row++ {
		if strings.EqualFold(strings.TrimSpace(g.At(row, 1).String()), want) {
			return row
		}
	}
	return 0
}
