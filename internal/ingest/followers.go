package ingest

import (
	"strings"
)

// parseFollowersSheet 解析 FOLLOWERS 表。
// 总粉丝数写在表头上方某个 "Total followers..." 前缀的标签格里，
// 每条快照都携带这个表级总数（不是逐行累计），外加当行的新增数
func parseFollowersSheet(g Grid, warnings *[]string) []FollowerRecord {
	header := findHeaderRow(g, "date")

	total := 0
	totalFound := false
	limit := g.Rows()
	if header > 0 {
		limit = header - 1
	}
	for row := 1; row <= limit && !totalFound; row++ {
		for col := 1; col <= 4; col++ {
			label := strings.ToLower(strings.TrimSpace(g.At(row, col).String()))
			if strings.HasPrefix(label, "total followers") {
				total = CoerceInt(g.At(row, col+1), 0)
				totalFound = true
				break
			}
		}
	}

	if header == 0 {
		*warnings = append(*warnings, "FOLLOWERS 表未找到 Date 表头，整表跳过")
		return nil
	}

	var records []FollowerRecord
	for row := header + 1; row <= g.Rows(); row++ {
		date, ok := CoerceDate(g.At(row, 1))
		if !ok {
			continue
		}
		records = append(records, FollowerRecord{
			SnapshotDate:   date,
			TotalFollowers: total,
			NewFollowers:   CoerceInt(g.At(row, 2), 0),
		})
	}

	if len(records) == 0 && totalFound {
		*warnings = append(*warnings, "FOLLOWERS 表读到了总粉丝数但没有数据行，总数被丢弃")
	}
	return records
}
