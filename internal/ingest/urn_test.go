package ingest

import (
	"testing"
)

func TestExtractURNSubtypes(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/feed/update/urn:li:share:7432391508978397184", "7432391508978397184"},
		{"https://www.linkedin.com/feed/update/urn:li:activity:6844785523593134080", "6844785523593134080"},
		{"urn:li:ugcPost:7000000000000000001", "7000000000000000001"},
	}
	for _, c := range cases {
		got, ok := ExtractURN(c.url)
		if !ok {
			t.Errorf("ExtractURN(%q) failed", c.url)
			continue
		}
		if got != c.want {
			t.Errorf("ExtractURN(%q) = %s, want %s", c.url, got, c.want)
		}
	}
}

func TestExtractURNInvalid(t *testing.T) {
	for _, url := range []string{"https://www.linkedin.com/", "", "urn:li:member:123"} {
		if _, ok := ExtractURN(url); ok {
			t.Errorf("ExtractURN(%q) should fail", url)
		}
	}
}
