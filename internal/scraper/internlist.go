package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/network"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

const (
	internListBaseURL = "https://www.intern-list.com"
	// Webflow CMS listing page for the Data Analysis track.
	InternListURL = internListBaseURL + "/da-intern-list"
	// Main page with the hourly-updated table, used by the browser fallback.
	InternListMainURL = internListBaseURL + "/?k=da"

	internListDateLayout = "January 2, 2006"
)

// InternList scrapes the static Webflow listing markup. It extracts every
// posting on the page; the in-window decision is the orchestrator's, which
// also owns the browser fallback when nothing on the static page is fresh.
type InternList struct {
	client *network.Client
}

func NewInternList(client *network.Client) *InternList {
	return &InternList{client: client}
}

func (s *InternList) Name() string {
	return SourceInternList
}

func (s *InternList) Fetch(ctx context.Context) ([]models.Job, error) {
	html, err := s.client.FetchText(ctx, InternListURL, nil)
	if err != nil {
		return nil, err
	}
	return parseInternList(html), nil
}

// parseInternList walks the listing cards in document order. Each card is a
// link into /da-intern-list/ with title, date label, and company paragraphs;
// the path's last segment is the stable posting identity, deduplicated
// within the page.
func parseInternList(html string) []models.Job {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var jobs []models.Job
	pageSeen := map[string]struct{}{}

	doc.Find(`a[href^="/da-intern-list/"]`).Each(func(_ int, card *goquery.Selection) {
		path, _ := card.Attr("href")
		title := cleanText(card.Find("p.jobtitle").First().Text())
		dateStr := cleanText(card.Find("p.blogtag").First().Text())
		company := cleanText(card.Find("p.companyname_list").First().Text())
		if path == "" || title == "" || dateStr == "" {
			return
		}

		segment := path[strings.LastIndex(path, "/")+1:]
		if segment == "" {
			return
		}
		if _, dup := pageSeen[segment]; dup {
			return
		}
		pageSeen[segment] = struct{}{}

		job := models.Job{
			ID:        "il_" + segment,
			Source:    SourceInternList,
			Title:     truncate(title, maxTitleLen),
			Company:   truncate(company, maxCompanyLen),
			URL:       absoluteURL(internListBaseURL, path),
			PostedRaw: dateStr,
		}
		// Date labels carry no time-of-day; midnight UTC is what the
		// date-only recency rule compensates for.
		if posted, ok := recency.ParseAbsolute(dateStr, internListDateLayout); ok {
			posted = posted.UTC()
			job.Posted = &posted
		}
		jobs = append(jobs, job)
	})

	return jobs
}
