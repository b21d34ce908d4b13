package ingest

import (
	"strings"
	"testing"
	"time"
)

func row(vals ...string) []Cell {
	cells := make([]Cell, 0, len(vals))
	for _, v := range vals {
		cells = append(cells, classifyCell(v))
	}
	return cells
}

func TestParseDiscoverySheet(t *testing.T) {
	g := Grid{
		row("Discovery"),
		row("Impressions", "12,450"),
		row("Members reached", "8,300"),
		row("Some other label", "999"),
	}
	var warnings []string
	totals := parseDiscoverySheet(g, &warnings)

	if totals["impressions"] != 12450 {
		t.Errorf("impressions = %d, want 12450", totals["impressions"])
	}
	if totals["members_reached"] != 8300 {
		t.Errorf("members_reached = %d, want 8300", totals["members_reached"])
	}
	if len(totals) != 2 {
		t.Errorf("unexpected extra keys: %v", totals)
	}
}

func TestParseEngagementSheetSkipsPreamble(t *testing.T) {
	g := Grid{
		row("Engagement highlights"),
		row(""),
		row("Date", "Impressions", "Engagements"),
		row("2025-11-01", "200", "14"),
		row("NOT_A_DATE", "abc", "xyz"),
		row("2025-11-02", "250", "18"),
	}
	var warnings []string
	records := parseEngagementSheet(g, &warnings)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Impressions != 200 || records[0].Engagements != 14 {
		t.Errorf("first record = %+v", records[0])
	}
	// 坏行跳过后顺序保持
	if !records[1].MetricDate.Equal(time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second record date = %v", records[1].MetricDate)
	}
	if len(warnings) != 0 {
		t.Errorf("bad rows should skip silently, got warnings %v", warnings)
	}
}

func TestParseEngagementSheetNoHeader(t *testing.T) {
	g := Grid{row("nothing"), row("here")}
	var warnings []string
	if records := parseEngagementSheet(g, &warnings); records != nil {
		t.Errorf("expected nil records, got %v", records)
	}
	if len(warnings) != 1 {
		t.Errorf("expected one warning, got %v", warnings)
	}
}

func TestParseFollowersSheet(t *testing.T) {
	g := Grid{
		row("Total followers on 2025-11-30", "512"),
		row(""),
		row("Date", "New followers"),
		row("2025-11-01", "5"),
		row("2025-11-02", "3"),
	}
	var warnings []string
	records := parseFollowersSheet(g, &warnings)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.TotalFollowers != 512 {
			t.Errorf("each snapshot carries the sheet-wide total, got %d", r.TotalFollowers)
		}
	}
	if records[0].NewFollowers != 5 || records[1].NewFollowers != 3 {
		t.Errorf("new follower deltas wrong: %+v", records)
	}
}

func TestParseFollowersSheetTotalWithoutRowsWarns(t *testing.T) {
	g := Grid{
		row("Total followers", "512"),
		row("Date", "New followers"),
	}
	var warnings []string
	records := parseFollowersSheet(g, &warnings)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(warnings) != 1 {
		t.Errorf("discarded total must warn, got %v", warnings)
	}
}

func TestParseDemographicsSheet(t *testing.T) {
	g := Grid{
		row("Top Demographics", "Value", "Percentage"),
		row("Job title", "Software Engineer", "22%"),
		row("Industry", "IT Services", "< 1%"),
		row("Location", "", "5%"),
		row("Seniority", "Senior", "0.12"),
	}
	snapshot := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	var warnings []string
	records := parseDemographicsSheet(g, snapshot, &warnings)

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (row with empty value skipped)", len(records))
	}
	if records[0].Category != "job title" {
		t.Errorf("category stored lowercased, got %q", records[0].Category)
	}
	if records[0].Percentage != 0.22 {
		t.Errorf("percentage = %f, want 0.22", records[0].Percentage)
	}
	if records[1].Percentage != 0.005 {
		t.Errorf("'< 1%%' sentinel = %f, want 0.005", records[1].Percentage)
	}
}

func TestParseDemographicsSheetEmptyWarns(t *testing.T) {
	g := Grid{row("Category", "Value", "Percentage")}
	var warnings []string
	parseDemographicsSheet(g, time.Now(), &warnings)
	if len(warnings) != 1 {
		t.Errorf("zero records must warn, got %v", warnings)
	}
}

func TestParseAggregateExportMissingSheetsWarnNotCrash(t *testing.T) {
	wb := wbWithSheets("DISCOVERY", "ENGAGEMENT")
	wb.Sheets["DISCOVERY"] = Grid{row("Impressions", "100")}
	wb.Sheets["ENGAGEMENT"] = Grid{
		row("Date", "Impressions", "Engagements"),
		row("2025-11-01", "100", "9"),
	}

	result := ParseAggregateExport(wb, time.Now())

	if len(result.DailyMetrics) != 1 {
		t.Errorf("present sheets must still parse, got %d daily metrics", len(result.DailyMetrics))
	}
	joined := strings.Join(result.Warnings, "\n")
	for _, missing := range []string{SheetTopPosts, SheetFollowers, SheetDemographics} {
		if !strings.Contains(joined, missing) {
			t.Errorf("warning should name missing sheet %s, got: %s", missing, joined)
		}
	}
}
