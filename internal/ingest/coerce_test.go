package ingest

import (
	"math"
	"testing"
	"time"
)

func TestCoerceIntAcceptsCommaSeparators(t *testing.T) {
	cases := []struct {
		cell Cell
		want int
	}{
		{TextCell("1,316"), 1316},
		{TextCell("42"), 42},
		{TextCell("0"), 0},
		{NumberCell(940), 940},
		{TextCell("bad"), 0},
		{TextCell(""), 0},
		{EmptyCell(), 0},
	}
	for _, c := range cases {
		if got := CoerceInt(c.cell, 0); got != c.want {
			t.Errorf("CoerceInt(%v) = %d, want %d", c.cell, got, c.want)
		}
	}
}

func TestCoerceIntDefault(t *testing.T) {
	if got := CoerceInt(TextCell("not a number"), -1); got != -1 {
		t.Errorf("expected default -1, got %d", got)
	}
}

func TestCoerceFloat(t *testing.T) {
	if got := CoerceFloat(TextCell("3.5"), 0); got != 3.5 {
		t.Errorf("CoerceFloat = %f, want 3.5", got)
	}
	if got := CoerceFloat(TextCell("garbage"), 1.5); got != 1.5 {
		t.Errorf("expected default 1.5, got %f", got)
	}
}

func TestCoerceDateFormats(t *testing.T) {
	want := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-11-01", "11/1/2025", "11/01/2025", "Nov 1, 2025"} {
		got, ok := CoerceDate(TextCell(raw))
		if !ok {
			t.Errorf("CoerceDate(%q) failed", raw)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("CoerceDate(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestCoerceDateRejectsGarbage(t *testing.T) {
	for _, c := range []Cell{TextCell("NOT_A_DATE"), TextCell(""), EmptyCell(), NumberCell(12)} {
		if _, ok := CoerceDate(c); ok {
			t.Errorf("CoerceDate(%v) should fail", c)
		}
	}
}

func TestCoerceDateExcelSerial(t *testing.T) {
	// 45962 天对应 2025-11-01
	got, ok := CoerceDate(NumberCell(45962))
	if !ok {
		t.Fatal("serial date not recognized")
	}
	want := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("serial 45962 = %v, want %v", got, want)
	}
}

func TestCoercePercentageTable(t *testing.T) {
	cases := []struct {
		cell Cell
		want float64
	}{
		{NumberCell(0.31), 0.31},
		{TextCell("< 1%"), 0.005},
		{TextCell("15%"), 0.15},
		{TextCell("junk"), 0},
		{EmptyCell(), 0},
	}
	for _, c := range cases {
		if got := CoercePercentage(c.cell); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("CoercePercentage(%v) = %f, want %f", c.cell, got, c.want)
		}
	}
}

func TestParsePostHour(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"11:53 AM", 11},
		{"2:30 PM", 14},
		{"12:00 AM", 0},
		{"12:00 PM", 12},
	}
	for _, c := range cases {
		got := ParsePostHour(c.raw)
		if got == nil || *got != c.want {
			t.Errorf("ParsePostHour(%q) = %v, want %d", c.raw, got, c.want)
		}
	}
	if ParsePostHour("not-a-time") != nil || ParsePostHour("") != nil {
		t.Error("invalid time should yield nil")
	}
}
