package ingest

import (
	"strings"
	"time"
)

// parseDemographicsSheet 解析聚合导出的 DEMOGRAPHICS 表。
// 表头行首格是 "Top Demographics" 或 "Category"，
// 其后每行是（类目、取值、百分比）。这张表静默解析失败很常见，
// 零记录时必须发告警
func parseDemographicsSheet(g Grid, snapshotDate time.Time, warnings *[]string) []DemographicRecord {
	header := 0
	for row := 1; row <= g.Rows(); row++ {
		first := strings.ToLower(strings.TrimSpace(g.At(row, 1).String()))
		if first == "top demographics" || first == "category" {
			header = row
			break
		}
	}
	if header == 0 {
		*warnings = append(*warnings, "DEMOGRAPHICS 表未找到表头，整表跳过")
		return nil
	}

	var records []DemographicRecord
	for row := header + 1; row <= g.Rows(); row++ {
		category := strings.ToLower(strings.TrimSpace(g.At(row, 1).String()))
		value := strings.TrimSpace(g.At(row, 2).String())
		if category == "" || value == "" {
			continue
		}
		records = append(records, DemographicRecord{
			SnapshotDate: snapshotDate,
			Category:     category,
			Value:        value,
			Percentage:   CoercePercentage(g.At(row, 3)),
		})
	}

	if len(records) == 0 {
		*warnings = append(*warnings, "DEMOGRAPHICS 表没有解析出任何受众记录")
	}
	return records
}
