package scraper

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/suhasramanand/intern-alert/internal/guardrails"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/network"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

const (
	JobrightURL = "https://jobright.ai/jobs/data-scientist-intern-jobs-in-united-states"

	jobrightInfoBase = "https://jobright.ai/jobs/info/"
)

// JobrightMinisiteURLs are the Next.js minisite pages whose __NEXT_DATA__
// blob carries initialJobs with millisecond posted times.
var JobrightMinisiteURLs = []string{
	"https://jobright.ai/minisites-jobs/intern/us/data_analysis",
	"https://jobright.ai/minisites-jobs/intern/us/aiml",
	"https://jobright.ai/minisites-jobs/intern/us/business_analyst",
}

var (
	jobrightLinkPattern  = regexp.MustCompile(`https://jobright\.ai/jobs/info/([a-f0-9]+)`)
	jobrightTitlePattern = regexp.MustCompile(`\[([^\]]+)\]`)
)

// Jobright extracts postings from the embedded __NEXT_DATA__ JSON. This is
// the highest-value source: its fetches get the one bounded retry, and the
// normalizer applies window and guardrail filtering itself since the payload
// carries salary, location, and exact posted times.
type Jobright struct {
	client     *network.Client
	windowMins int
	minHourly  float64
}

func NewJobright(client *network.Client, windowMins int, minHourly float64) *Jobright {
	return &Jobright{client: client, windowMins: windowMins, minHourly: minHourly}
}

func (s *Jobright) Name() string {
	return SourceJobright
}

// Fetch pulls all minisites, merging by posting ID, then falls back to a
// link scan of the search page when every minisite comes back empty.
func (s *Jobright) Fetch(ctx context.Context, now time.Time) ([]models.Job, error) {
	var jobs []models.Job
	pageSeen := map[string]struct{}{}
	var lastErr error

	for _, target := range JobrightMinisiteURLs {
		html, err := s.client.FetchTextRetry(ctx, target, nil)
		if err != nil {
			lastErr = err
			continue
		}
		for _, job := range parseJobrightNextData(html, now, s.windowMins, s.minHourly) {
			if _, dup := pageSeen[job.ID]; dup {
				continue
			}
			pageSeen[job.ID] = struct{}{}
			jobs = append(jobs, job)
		}
	}
	if len(jobs) > 0 {
		return jobs, nil
	}
	if lastErr != nil && len(pageSeen) == 0 {
		// every minisite failed outright; let the orchestrator decide
		// whether the browser fallback is worth it
		return nil, lastErr
	}

	html, err := s.client.FetchTextRetry(ctx, JobrightURL, nil)
	if err != nil {
		return nil, err
	}
	return parseJobrightLinks(html, s.windowMins), nil
}

// nextDataJob mirrors one initialJobs entry. PostedDate arrives as a JSON
// number but is kept raw so a single malformed entry is skipped rather than
// failing the whole blob.
type nextDataJob struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Company    string          `json:"company"`
	Salary     string          `json:"salary"`
	Location   string          `json:"location"`
	ApplyURL   string          `json:"applyUrl"`
	PostedDate json.RawMessage `json:"postedDate"`
}

// parseJobrightNextData locates the __NEXT_DATA__ script, descends into
// props.pageProps.initialJobs, and emits one record per entry that has an
// identity, a sane posted time inside the window, and passes both
// guardrails. Future-dated entries are invalid and dropped.
func parseJobrightNextData(html string, now time.Time, windowMins int, minHourly float64) []models.Job {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	raw := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).First().Text())
	if raw == "" {
		return nil
	}

	var blob struct {
		Props struct {
			PageProps struct {
				InitialJobs []json.RawMessage `json:"initialJobs"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return nil
	}

	nowMillis := now.UnixMilli()
	windowMillis := int64(windowMins) * 60 * 1000

	var jobs []models.Job
	for _, entry := range blob.Props.PageProps.InitialJobs {
		var j nextDataJob
		if err := json.Unmarshal(entry, &j); err != nil {
			continue
		}
		postedMillis, ok := parseMillis(j.PostedDate)
		if j.ID == "" || !ok {
			continue
		}
		elapsed := nowMillis - postedMillis
		if elapsed < 0 || elapsed > windowMillis {
			continue
		}
		if !guardrails.MeetsMinPay(j.Salary, minHourly) {
			continue
		}
		if !guardrails.IsUSALocation(j.Location) {
			continue
		}

		target := strings.TrimSpace(j.ApplyURL)
		if !strings.HasPrefix(target, "http") {
			target = jobrightInfoBase + j.ID
		}
		title := truncate(cleanText(j.Title), maxTitleLen)
		if title == "" {
			title = "Data Analysis Intern"
		}

		jobs = append(jobs, models.Job{
			ID:            "jr_" + j.ID,
			Source:        SourceJobright,
			Title:         title,
			Company:       truncate(cleanText(j.Company), maxCompanyLen),
			URL:           stripQuery(target),
			PostedRaw:     recency.RelativeLabel(int(elapsed / (60 * 1000))),
			PostedMillis:  postedMillis,
			PostedEastern: recency.FormatEastern(postedMillis),
		})
	}
	return jobs
}

func parseMillis(raw json.RawMessage) (int64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

// parseJobrightLinks is the crude static fallback: find /jobs/info/ links in
// the page and accept any with an in-window relative phrase in the
// surrounding text. Titles come from a bracketed label when present.
func parseJobrightLinks(html string, windowMins int) []models.Job {
	var jobs []models.Job
	pageSeen := map[string]struct{}{}

	for _, loc := range jobrightLinkPattern.FindAllStringSubmatchIndex(html, -1) {
		id := html[loc[2]:loc[3]]
		if _, dup := pageSeen[id]; dup {
			continue
		}
		start := max(0, loc[0]-120)
		end := min(len(html), loc[1]+120)
		chunk := html[start:end]

		mins, phrase, ok := recency.ParseRelative(chunk)
		if !ok || mins > windowMins {
			continue
		}
		title := "Data Scientist Intern"
		if m := jobrightTitlePattern.FindStringSubmatch(chunk); m != nil {
			title = strings.TrimSpace(m[1])
		}
		pageSeen[id] = struct{}{}
		jobs = append(jobs, models.Job{
			ID:        "jr_" + id,
			Source:    SourceJobright,
			Title:     truncate(title, maxTitleLen),
			URL:       jobrightInfoBase + id,
			PostedRaw: phrase,
		})
	}
	return jobs
}
