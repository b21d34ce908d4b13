package ingest

import (
	"strings"
)

// parseDiscoverySheet 解析 DISCOVERY 总览表。
// 表内是标签/数值成对的行，只认两个固定标签，其余行忽略
func parseDiscoverySheet(g Grid, warnings *[]string) map[string]int {
	totals := make(map[string]int)

	for row := 1; row <= g.Rows(); row++ {
		label := strings.ToLower(strings.TrimSpace(g.At(row, 1).String()))
		switch label {
		case "impressions":
			totals["impressions"] = CoerceInt(g.At(row, 2), 0)
		case "members reached":
			totals["members_reached"] = CoerceInt(g.At(row, 2), 0)
		}
	}

	if len(totals) == 0 {
		*warnings = append(*warnings, "DISCOVERY 表未识别到任何总览指标")
	}
	return totals
}
