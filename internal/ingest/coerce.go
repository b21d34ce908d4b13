package ingest

import (
	"strconv"
	"strings"
	"time"
)

// 日期字符串格式按优先级排列：先试月/日/年（实测导出格式），ISO 兜底
var dateLayouts = []string{
	"Jan 2, 2006",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"2/1/2006",
	"2006/01/02",
}

// excel 序列日期的纪元（1900 日期系统，含闰年 bug 偏移）
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// CoerceInt 宽容整型转换。接受数值单元格和带千分位逗号的数字串，失败返回默认值
func CoerceInt(c Cell, def int) int {
	switch c.Kind {
	case CellNumber:
		return int(c.Number)
	case CellText:
		return parseIntWithCommas(c.Text, def)
	default:
		return def
	}
}

// CoerceFloat 宽容浮点转换，契约同 CoerceInt
func CoerceFloat(c Cell, def float64) float64 {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellText:
		s := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", "")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return def
	default:
		return def
	}
}

// CoerceDate 宽容日期转换。失败返回 ok=false，调用方必须跳过该行
func CoerceDate(c Cell) (time.Time, bool) {
	switch c.Kind {
	case CellDate:
		return dateOnly(c.Date), true
	case CellNumber:
		// 未应用日期样式时 excel 按序列数值给出
		if c.Number > 20000 && c.Number < 80000 {
			return dateOnly(excelEpoch.AddDate(0, 0, int(c.Number))), true
		}
		return time.Time{}, false
	case CellText:
		s := strings.TrimSpace(c.Text)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// CoercePercentage 百分比转换：
//   - 数值单元格已是小数比例，原样返回
//   - 含 "<" 的字符串是平台 "低于 1%" 的写法，固定取 0.005
//   - 以 "%" 结尾的字符串除以 100
//   - 其余一律 0
func CoercePercentage(c Cell) float64 {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellText:
		s := strings.TrimSpace(c.Text)
		if strings.Contains(s, "<") {
			return 0.005
		}
		if strings.HasSuffix(s, "%") {
			num := strings.TrimSpace(strings.TrimSuffix(s, "%"))
			if v, err := strconv.ParseFloat(num, 64); err == nil {
				return v / 100
			}
		}
		return 0
	default:
		return 0
	}
}

// ParsePostHour 解析 "11:53 AM" 形式的发帖时间，返回 24 小时制的小时数
func ParsePostHour(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			h := t.Hour()
			return &h
		}
	}
	return nil
}

func parseIntWithCommas(raw string, def int) int {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
