package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/network"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

const (
	// Shared-view embed of the listings table (Data Analysis view).
	AirtableEmbedURL = "https://airtable.com/embed/app742LMLO7tQP9dO/shrxLJiBa4dfQZwx8?viewControls=on"

	airtableBaseURL = "https://airtable.com"
	airtableAppID   = "app742LMLO7tQP9dO"
)

// ErrNoAPI means the embed page did not expose a usable readSharedViewData
// endpoint (or it refused us). The browser fallback is the only way in then.
var ErrNoAPI = errors.New("airtable: shared view API unavailable")

var airtableAPIPattern = regexp.MustCompile(`fetch\("([^"]*readSharedViewData[^"]+)"`)

// airtableAPIPath finds the readSharedViewData endpoint in the embed page
// markup. The URL sits inside a JS string literal with its slashes and
// ampersands unicode-escaped; those are undone before the path check.
func airtableAPIPath(html string) (string, bool) {
	m := airtableAPIPattern.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	path := strings.NewReplacer(`\u002F`, "/", `\u0026`, "&", `\/`, "/").Replace(m[1])
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	return path, true
}

// Airtable reads the shared-view data API behind the embed page. The API
// frequently answers 401; callers treat ErrNoAPI as "try the browser".
type Airtable struct {
	client     *network.Client
	windowMins int
}

func NewAirtable(client *network.Client, windowMins int) *Airtable {
	return &Airtable{client: client, windowMins: windowMins}
}

func (s *Airtable) Name() string {
	return SourceAirtable
}

func (s *Airtable) FetchAPI(ctx context.Context) ([]models.Job, error) {
	html, err := s.client.FetchText(ctx, AirtableEmbedURL, nil)
	if err != nil {
		return nil, err
	}
	path, ok := airtableAPIPath(html)
	if !ok {
		return nil, ErrNoAPI
	}

	body, err := s.client.FetchText(ctx, airtableBaseURL+path, map[string]string{
		"Referer":                   AirtableEmbedURL,
		"x-airtable-application-id": airtableAppID,
		"Accept":                    "application/json",
	})
	if err != nil {
		return nil, ErrNoAPI
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, ErrNoAPI
	}
	return parseAirtableData(data, s.windowMins), nil
}

// parseAirtableData digs rows out of the loosely shaped readSharedViewData
// response. Row containers vary between deployments (rowsById map, rows
// list); cells are keyed by field name and may wrap values in
// {displayValue, value} objects. Only rows with an in-window relative
// phrase survive.
func parseAirtableData(data map[string]any, windowMins int) []models.Job {
	inner, _ := data["data"].(map[string]any)
	if inner == nil {
		return nil
	}

	var rows []any
	switch v := inner["rowsById"].(type) {
	case map[string]any:
		for _, row := range v {
			rows = append(rows, row)
		}
	}
	if rows == nil {
		rows = sliceValue(inner["rows"])
	}
	if rows == nil {
		if table, ok := inner["table"].(map[string]any); ok {
			rows = sliceValue(table["rows"])
		}
	}

	var jobs []models.Job
	pageSeen := map[string]struct{}{}
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		job, ok := airtableRowToJob(row, windowMins)
		if !ok {
			continue
		}
		if _, dup := pageSeen[job.ID]; dup {
			continue
		}
		pageSeen[job.ID] = struct{}{}
		jobs = append(jobs, job)
	}
	return jobs
}

func airtableRowToJob(row map[string]any, windowMins int) (models.Job, bool) {
	cells, _ := row["cells"].(map[string]any)
	field := func(names ...string) string {
		for _, name := range names {
			if s := stringValue(row[name]); s != "" {
				return s
			}
			if cells != nil {
				if s := stringValue(cells[name]); s != "" {
					return s
				}
			}
		}
		return ""
	}

	title := truncate(field("Position Title", "positionTitle", "title"), maxTitleLen)
	dateStr := field("Date", "date")
	company := truncate(field("Company", "company"), maxCompanyLen)
	link := field("Apply", "Apply URL")
	if title == "" {
		return models.Job{}, false
	}

	mins, phrase, ok := recency.ParseRelative(dateStr)
	if !ok || mins > windowMins {
		return models.Job{}, false
	}

	target := AirtableEmbedURL
	if strings.HasPrefix(link, "http") {
		target = link
	}
	return models.Job{
		ID:        "at_" + hashID(title, company, dateStr),
		Source:    SourceAirtable,
		Title:     title,
		Company:   company,
		URL:       target,
		PostedRaw: phrase,
	}, true
}
