package ingest

import (
	"strings"
)

// TOP POSTS 表并排放了两张独立的小表：
// 左表 1-3 列（URL、日期、互动数），右表 5-7 列（URL、日期、曝光数），
// 两边描述互有重叠的帖子集合。按 URN 数字 id 在内存里合并，
// 只出现在一侧的帖子另一项指标记 0
func parseTopPostsSheet(g Grid, warnings *[]string) []PostRecord {
	header := 0
	for row := 1; row <= g.Rows() && header == 0; row++ {
		for col := 1; col <= 8; col++ {
			if strings.EqualFold(strings.TrimSpace(g.At(row, col).String()), "post url") {
				header = row
				break
			}
		}
	}
	if header == 0 {
		*warnings = append(*warnings, "TOP POSTS 表未找到 Post URL 表头，整表跳过")
		return nil
	}

	byURN := make(map[string]*PostRecord)
	var order []string

	upsert := func(urn, url string, dateCell Cell) *PostRecord {
		if rec, ok := byURN[urn]; ok {
			return rec
		}
		date, ok := CoerceDate(dateCell)
		if !ok {
			return nil
		}
		id := urn
		u := url
		rec := &PostRecord{
			LinkedinPostID: &id,
			PostURL:        &u,
			PostDate:       date,
			Source:         FormatAggregate,
		}
		byURN[urn] = rec
		order = append(order, urn)
		return rec
	}

	for row := header + 1; row <= g.Rows(); row++ {
		// 左表：互动数
		if url := strings.TrimSpace(g.At(row, 1).String()); url != "" {
			if urn, ok := ExtractURN(url); ok {
				if rec := upsert(urn, url, g.At(row, 2)); rec != nil {
					rec.Engagements = CoerceInt(g.At(row, 3), 0)
				}
			}
		}
		// 右表：曝光数
		if url := strings.TrimSpace(g.At(row, 5).String()); url != "" {
			if urn, ok := ExtractURN(url); ok {
				if rec := upsert(urn, url, g.At(row, 6)); rec != nil {
					rec.Impressions = CoerceInt(g.At(row, 7), 0)
				}
			}
		}
	}

	records := make([]PostRecord, 0, len(order))
	for _, urn := range order {
		rec := byURN[urn]
		if rec.Impressions > 0 {
			rec.EngagementRate = float64(rec.Engagements) / float64(rec.Impressions)
		}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		*warnings = append(*warnings, "TOP POSTS 表没有解析出任何帖子")
	}
	return records
}
