package ingest

import (
	"math"
	"testing"
	"time"
)

func perPostPerformanceGrid() Grid {
	return Grid{
		row("Post URL", "https://www.linkedin.com/feed/update/urn:li:ugcPost:7432391508978397184"),
		row("Post Date", "Feb 25, 2026"),
		row("Post Publish Time", "11:53 AM"),
		row("", ""),
		row("Impressions", "1,316"),
		row("Members reached", "940"),
		row("Reactions", "42"),
		row("Comments", "7"),
		row("Reposts", "3"),
		row("Saves", "12"),
		row("Sends on LinkedIn", "18"),
		row("Profile viewers from this post", "5"),
		row("Followers gained from this post", "2"),
	}
}

func TestParsePerPostPerformancePairs(t *testing.T) {
	kv := parsePerPostPerformance(perPostPerformanceGrid())
	if kv["Post URL"] != "https://www.linkedin.com/feed/update/urn:li:ugcPost:7432391508978397184" {
		t.Errorf("Post URL = %q", kv["Post URL"])
	}
	if kv["Impressions"] != "1,316" {
		t.Errorf("Impressions = %q", kv["Impressions"])
	}
	if _, ok := kv[""]; ok {
		t.Error("empty labels must not be collected")
	}
}

func TestBuildPerPostRecord(t *testing.T) {
	rec, err := buildPerPostRecord(parsePerPostPerformance(perPostPerformanceGrid()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.LinkedinPostID == nil || *rec.LinkedinPostID != "7432391508978397184" {
		t.Errorf("linkedin post id = %v", rec.LinkedinPostID)
	}
	if !rec.PostDate.Equal(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("post date = %v", rec.PostDate)
	}
	if rec.PostHour == nil || *rec.PostHour != 11 {
		t.Errorf("post hour = %v", rec.PostHour)
	}
	if rec.Impressions != 1316 || rec.MembersReached != 940 {
		t.Errorf("counters = %+v", rec)
	}
	if rec.Saves != 12 || rec.Sends != 18 || rec.ProfileViews != 5 || rec.FollowersGained != 2 || rec.Reposts != 3 {
		t.Errorf("extended metrics = %+v", rec)
	}
	if rec.Shares != 3 {
		t.Errorf("reposts double as shares, got %d", rec.Shares)
	}
	want := float64(42+7+3) / 1316
	if math.Abs(rec.EngagementRate-want) > 1e-9 {
		t.Errorf("engagement rate = %f, want %f", rec.EngagementRate, want)
	}
	if rec.Source != FormatPerPost || !rec.HasComponents {
		t.Errorf("record source flags = %+v", rec)
	}
}

func TestBuildPerPostRecordMissingURL(t *testing.T) {
	if _, err := buildPerPostRecord(map[string]string{"Post Date": "Feb 25, 2026"}); err == nil {
		t.Error("missing Post URL must fail")
	}
}

func TestBuildPerPostRecordBadDate(t *testing.T) {
	kv := map[string]string{
		"Post URL":  "https://www.linkedin.com/feed/update/urn:li:ugcPost:1",
		"Post Date": "someday",
	}
	if _, err := buildPerPostRecord(kv); err == nil {
		t.Error("unparseable Post Date must fail")
	}
}

func TestParsePerPostDemographicsNormalizesCategories(t *testing.T) {
	g := Grid{
		row("Category", "Value", "Percentage"),
		row("Company size", "10,001+ employees", "0.31"),
		row("Job title", "Security Engineer", "22%"),
		row("Location", "Small town", "< 1%"),
	}
	var warnings []string
	records := parsePerPostDemographics(g, &warnings)

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Category != "company_size" {
		t.Errorf("category = %q, want company_size", records[0].Category)
	}
	if records[0].Percentage != 0.31 {
		t.Errorf("numeric percentage kept as-is, got %f", records[0].Percentage)
	}
	if records[1].Percentage != 0.22 {
		t.Errorf("percent string = %f, want 0.22", records[1].Percentage)
	}
	if records[2].Percentage != 0.005 {
		t.Errorf("'< 1%%' = %f, want 0.005", records[2].Percentage)
	}
}

func TestParsePerPostExport(t *testing.T) {
	wb := wbWithSheets(SheetPerformance, SheetTopDemographics)
	wb.Sheets[SheetPerformance] = perPostPerformanceGrid()
	wb.Sheets[SheetTopDemographics] = Grid{
		row("Category", "Value", "Percentage"),
		row("Company", "IBM", "0.08"),
	}

	result, err := ParsePerPostExport(wb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Posts) != 1 {
		t.Fatalf("per-post export must yield exactly one post, got %d", len(result.Posts))
	}
	if len(result.PostDemographics) != 1 {
		t.Errorf("post demographics = %+v", result.PostDemographics)
	}
}
