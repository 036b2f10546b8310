package scraper

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func nextDataHTML(t *testing.T, entries []any) string {
	t.Helper()
	blob := map[string]any{
		"props": map[string]any{
			"pageProps": map[string]any{
				"initialJobs": entries,
			},
		},
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return fmt.Sprintf(
		`<html><body><script id="__NEXT_DATA__" type="application/json">%s</script></body></html>`,
		raw)
}

func TestParseJobrightNextData(t *testing.T) {
	now := time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC)
	millisAgo := func(mins int) int64 {
		return now.Add(-time.Duration(mins) * time.Minute).UnixMilli()
	}

	entries := []any{
		map[string]any{
			"id": "aaa111", "title": "Data Scientist Intern", "company": "Acme",
			"salary": "$30/hr", "location": "New York, NY",
			"applyUrl":   "https://acme.com/apply?utm_source=jobright&ref=x",
			"postedDate": millisAgo(30),
		},
		map[string]any{
			"id": "bbb222", "title": "ML Intern", "company": "Globex",
			"salary": "$20/hr", "location": "Austin, TX",
			"postedDate": millisAgo(30), // below min pay
		},
		map[string]any{
			"id": "ccc333", "title": "BI Intern", "company": "Initech",
			"salary": "$40/hr", "location": "Toronto, Canada",
			"postedDate": millisAgo(30), // non-US
		},
		map[string]any{
			"id": "ddd444", "title": "Stale Intern", "company": "Umbrella",
			"salary": "$40/hr", "location": "Remote",
			"postedDate": millisAgo(180), // outside window
		},
		map[string]any{
			"id": "eee555", "title": "Future Intern", "company": "Wonka",
			"salary": "$40/hr", "location": "Remote",
			"postedDate": millisAgo(-10), // posted in the future
		},
		map[string]any{
			"title": "No ID Intern", "company": "Hooli",
			"salary": "$40/hr", "location": "Remote",
			"postedDate": millisAgo(30),
		},
		map[string]any{
			"id": "fff666", "title": "", "company": "Vandelay",
			"salary": "$66362/yr", "location": "Remote",
			"postedDate": millisAgo(90), // empty title, no applyUrl
		},
	}

	jobs := parseJobrightNextData(nextDataHTML(t, entries), now, 120, 25)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d: %+v", len(jobs), jobs)
	}

	first := jobs[0]
	if first.ID != "jr_aaa111" {
		t.Fatalf("unexpected ID %q", first.ID)
	}
	if first.URL != "https://acme.com/apply" {
		t.Fatalf("tracking params must be stripped, got %q", first.URL)
	}
	if first.PostedRaw != "30 mins ago" {
		t.Fatalf("unexpected posted label %q", first.PostedRaw)
	}
	if first.PostedMillis == 0 || first.PostedEastern == "" {
		t.Fatalf("expected millis and Eastern display set: %+v", first)
	}

	second := jobs[1]
	if second.Title != "Data Analysis Intern" {
		t.Fatalf("empty title should default, got %q", second.Title)
	}
	if second.URL != jobrightInfoBase+"fff666" {
		t.Fatalf("missing applyUrl should fall back to info page, got %q", second.URL)
	}
	if second.PostedRaw != "1 hour ago" {
		t.Fatalf("expected singular hour label, got %q", second.PostedRaw)
	}
}

func TestParseJobrightNextDataSkipsMalformedEntry(t *testing.T) {
	now := time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC)
	entries := []any{
		map[string]any{
			"id": "bad", "title": "Broken",
			"postedDate": map[string]any{"unexpected": true},
		},
		map[string]any{
			"id": "good", "title": "Data Intern", "company": "Acme",
			"salary": "$30/hr", "location": "Remote",
			"postedDate": now.Add(-10 * time.Minute).UnixMilli(),
		},
	}
	jobs := parseJobrightNextData(nextDataHTML(t, entries), now, 120, 25)
	if len(jobs) != 1 || jobs[0].ID != "jr_good" {
		t.Fatalf("malformed entry must not poison the batch: %+v", jobs)
	}
}

func TestParseJobrightNextDataNoScript(t *testing.T) {
	if jobs := parseJobrightNextData("<html><body>nothing</body></html>", time.Now(), 120, 25); jobs != nil {
		t.Fatalf("expected nil, got %+v", jobs)
	}
}

func TestParseJobrightLinks(t *testing.T) {
	// the surrounding-text scan only looks 120 chars either side of each
	// link, so keep the fixture entries further apart than that
	pad := strings.Repeat("<span>filler</span>", 10)
	html := `
		<div>[Data Analyst Intern] posted 1 hour ago
			<a href="https://jobright.ai/jobs/info/abc123def">Apply</a></div>` + pad + `
		<div>posted 5 hours ago
			<a href="https://jobright.ai/jobs/info/ffff0000aa">Apply</a></div>` + pad + `
		<div>no timestamp here
			<a href="https://jobright.ai/jobs/info/bbbb1111cc">Apply</a></div>` + pad + `
		<div>[Data Analyst Intern] posted 1 hour ago
			<a href="https://jobright.ai/jobs/info/abc123def">Apply again</a></div>`

	jobs := parseJobrightLinks(html, 120)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d: %+v", len(jobs), jobs)
	}
	job := jobs[0]
	if job.ID != "jr_abc123def" {
		t.Fatalf("unexpected ID %q", job.ID)
	}
	if job.Title != "Data Analyst Intern" {
		t.Fatalf("bracketed label should become the title, got %q", job.Title)
	}
	if job.URL != jobrightInfoBase+"abc123def" {
		t.Fatalf("unexpected URL %q", job.URL)
	}
	if job.PostedRaw != "1 hour ago" {
		t.Fatalf("unexpected phrase %q", job.PostedRaw)
	}
}
