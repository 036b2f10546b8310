package scraper

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Data Analyst   Intern \n", "Data Analyst Intern"},
		{"Fr&eacute;d&eacute;ric &amp; Co", "Frédéric & Co"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := cleanText(tc.in); got != tc.want {
			t.Fatalf("cleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 250)
	if got := truncate(long, maxTitleLen); len([]rune(got)) != maxTitleLen {
		t.Fatalf("expected %d runes, got %d", maxTitleLen, len([]rune(got)))
	}
	if got := truncate("short", maxTitleLen); got != "short" {
		t.Fatalf("short input should pass through, got %q", got)
	}
	// rune-aware, not byte-aware
	if got := truncate(strings.Repeat("é", 150), 100); len([]rune(got)) != 100 {
		t.Fatalf("expected 100 runes, got %d", len([]rune(got)))
	}
}

func TestHashIDStable(t *testing.T) {
	a := hashID("Data Intern", "Acme", "2 hours ago")
	b := hashID("Data Intern", "Acme", "2 hours ago")
	if a != b {
		t.Fatalf("same inputs must hash identically: %q vs %q", a, b)
	}
	if c := hashID("Data Intern", "Acme", "3 hours ago"); c == a {
		t.Fatalf("different inputs should not collide: %q", c)
	}
	if len(a) > 10 {
		t.Fatalf("hash IDs are at most 10 digits, got %q", a)
	}
}

func TestStripQuery(t *testing.T) {
	if got := stripQuery("https://x.com/apply?utm=1&ref=2"); got != "https://x.com/apply" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := stripQuery("https://x.com/apply"); got != "https://x.com/apply" {
		t.Fatalf("no-query URL should pass through, got %q", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/path/page"
	cases := []struct {
		href string
		want string
	}{
		{"/jobs/1", "https://example.com/jobs/1"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/asset", "https://cdn.example.com/asset"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := absoluteURL(base, tc.href); got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}
