package ingest

import (
	"testing"
)

func wbWithSheets(names ...string) *Workbook {
	wb := &Workbook{Sheets: make(map[string]Grid)}
	for _, n := range names {
		key := NormalizeSheetName(n)
		wb.Sheets[key] = Grid{}
		wb.Names = append(wb.Names, key)
	}
	return wb
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		sheets []string
		want   ExportFormat
	}{
		{[]string{"PERFORMANCE", "TOP DEMOGRAPHICS"}, FormatPerPost},
		{[]string{"DISCOVERY", "ENGAGEMENT", "FOLLOWERS"}, FormatAggregate},
		{[]string{"RANDOM"}, FormatUnknown},
		{[]string{"performance", " top demographics "}, FormatPerPost},
		{[]string{"DISCOVERY"}, FormatUnknown},
		{[]string{}, FormatUnknown},
	}
	for _, c := range cases {
		if got := DetectFormat(wbWithSheets(c.sheets...)); got != c.want {
			t.Errorf("DetectFormat(%v) = %s, want %s", c.sheets, got, c.want)
		}
	}
}

func TestDetectPerPostWinsOverAggregate(t *testing.T) {
	// 两套识别表同时存在时单帖导出优先
	wb := wbWithSheets("PERFORMANCE", "TOP DEMOGRAPHICS", "DISCOVERY", "ENGAGEMENT")
	if got := DetectFormat(wb); got != FormatPerPost {
		t.Errorf("got %s, want per_post", got)
	}
}
