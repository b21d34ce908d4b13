package ingest

import (
	"math"
	"testing"
)

func TestTopPostsDualTableMerge(t *testing.T) {
	g := Grid{
		row("Top posts by engagement", "", "", "", "Top posts by impressions"),
		row("Post URL", "Post Date", "Engagements", "", "Post URL", "Post Date", "Impressions"),
		row(
			"https://www.linkedin.com/feed/update/urn:li:share:111", "2025-11-01", "180",
			"",
			"https://www.linkedin.com/feed/update/urn:li:share:111", "2025-11-01", "3200",
		),
	}
	var warnings []string
	records := parseTopPostsSheet(g, &warnings)

	if len(records) != 1 {
		t.Fatalf("both sides reference the same URN, want 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Engagements != 180 || rec.Impressions != 3200 {
		t.Errorf("merged record = %+v", rec)
	}
	if math.Abs(rec.EngagementRate-0.05625) > 1e-9 {
		t.Errorf("engagement_rate = %f, want 0.05625", rec.EngagementRate)
	}
	if rec.LinkedinPostID == nil || *rec.LinkedinPostID != "111" {
		t.Errorf("linkedin post id = %v", rec.LinkedinPostID)
	}
}

func TestTopPostsOneSidedRowsGetZeroOtherMetric(t *testing.T) {
	g := Grid{
		row("Post URL", "Post Date", "Engagements", "", "Post URL", "Post Date", "Impressions"),
		row("https://www.linkedin.com/feed/update/urn:li:activity:222", "2025-11-02", "40", "", "", "", ""),
		row("", "", "", "", "https://www.linkedin.com/feed/update/urn:li:activity:333", "2025-11-03", "900"),
	}
	var warnings []string
	records := parseTopPostsSheet(g, &warnings)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Engagements != 40 || records[0].Impressions != 0 {
		t.Errorf("left-only record = %+v", records[0])
	}
	if records[1].Impressions != 900 || records[1].Engagements != 0 {
		t.Errorf("right-only record = %+v", records[1])
	}
	if records[0].EngagementRate != 0 {
		t.Errorf("zero impressions must give zero rate, got %f", records[0].EngagementRate)
	}
}

func TestTopPostsSkipsUnrecognizedURLs(t *testing.T) {
	g := Grid{
		row("Post URL", "Post Date", "Engagements", "", "Post URL", "Post Date", "Impressions"),
		row("https://example.com/not-a-post", "2025-11-01", "10", "", "", "", ""),
		row("https://www.linkedin.com/feed/update/urn:li:share:444", "BAD DATE", "10", "", "", "", ""),
	}
	var warnings []string
	records := parseTopPostsSheet(g, &warnings)
	if len(records) != 0 {
		t.Errorf("unmatched URL and bad date rows must be skipped, got %+v", records)
	}
}

func TestTopPostsNoHeaderWarns(t *testing.T) {
	g := Grid{row("just", "noise")}
	var warnings []string
	parseTopPostsSheet(g, &warnings)
	if len(warnings) != 1 {
		t.Errorf("expected header warning, got %v", warnings)
	}
}
