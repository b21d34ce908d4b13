package ingest

import (
	"strconv"
	"strings"
	"time"
)

// CellKind 单元格取值的封闭类型集合
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellDate
)

// Cell 表格单元格。解析器不直接做动态类型判断，统一经过 Coerce* 函数
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

func (c Cell) IsEmpty() bool {
	if c.Kind == CellEmpty {
		return true
	}
	return c.Kind == CellText && strings.TrimSpace(c.Text) == ""
}

// String 返回展示用文本，数值去掉多余小数位
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// classifyCell 将 excelize 输出的字符串归类为封闭变体
func classifyCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyCell()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberCell(v)
	}
	return TextCell(s)
}

// Grid 行优先的二维网格，At 按 1 起始下标取值，越界返回空单元格
type Grid [][]Cell

func (g Grid) At(row, col int) Cell {
	if row < 1 || row > len(g) {
		return EmptyCell()
	}
	r := g[row-1]
	if col < 1 || col > len(r) {
		return EmptyCell()
	}
	return r[col-1]
}

func (g Grid) Rows() int {
	return len(g)
}
