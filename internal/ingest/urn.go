package ingest

import (
	"regexp"
)

// 同一物理帖子在不同导出里引用不同的 URN 子类型：
// 聚合表用 share / activity，单帖导出用 ugcPost。
// 三种子类型各自携带独立的数字 id，互不可换，跨格式对账依赖日期兜底
var urnPattern = regexp.MustCompile(`urn:li:(?:share|activity|ugcPost):(\d+)`)

// ExtractURN 从 URL 或 URN 文本中提取末尾数字 id
func ExtractURN(raw string) (string, bool) {
	m := urnPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}
