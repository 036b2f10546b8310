package scraper

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

// jobrightCardScript pulls every /jobs/info/ link with its own text and the
// text of the enclosing card, where the relative-time phrase usually lives.
const jobrightCardScript = `() => {
	const links = document.querySelectorAll('a[href*="/jobs/info/"]');
	return Array.from(links).map(a => {
		const href = a.getAttribute('href') || '';
		const m = href.match(/\/jobs\/info\/([a-f0-9]+)/);
		const id = m ? m[1] : '';
		const text = (a.innerText || a.textContent || '').trim();
		const parent = a.closest('[class*="card"], [class*="job"], [class*="item"], tr, li') || a.parentElement;
		const parentText = parent ? (parent.innerText || parent.textContent || '').trim().slice(0, 500) : '';
		return { id, href: href.split('?')[0], text, parentText };
	}).filter(x => x.id);
}`

// FetchBrowser renders the search page headlessly and extracts job cards.
// Last resort when both the minisites and the link scan come up empty.
func (s *Jobright) FetchBrowser(ctx context.Context, drv *browser.Driver) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := drv.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if _, err := page.Goto(JobrightURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, err
	}
	page.WaitForTimeout(6000)

	raw, err := page.Evaluate(jobrightCardScript)
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	pageSeen := map[string]struct{}{}
	for _, item := range sliceValue(raw) {
		id := stringValue(mapValue(item, "id"))
		if id == "" {
			continue
		}
		if _, dup := pageSeen[id]; dup {
			continue
		}
		text := stringValue(mapValue(item, "text"))
		parentText := stringValue(mapValue(item, "parentText"))

		mins, phrase, ok := recency.ParseRelative(text)
		if !ok {
			mins, phrase, ok = recency.ParseRelative(parentText)
		}
		if !ok || mins > s.windowMins {
			continue
		}

		title := jobrightCardTitle(text, phrase)
		href := stringValue(mapValue(item, "href"))
		if !hasHTTPPrefix(href) {
			href = jobrightInfoBase + id
		}

		pageSeen[id] = struct{}{}
		jobs = append(jobs, models.Job{
			ID:        "jr_" + id,
			Source:    SourceJobright,
			Title:     truncate(title, maxTitleLen),
			URL:       href,
			PostedRaw: phrase,
		})
	}
	return jobs, nil
}

// jobrightCardTitle strips the time phrase from the link text and keeps the
// first line; card text tends to be "title\ncompany\nN hours ago".
func jobrightCardTitle(text, phrase string) string {
	title := strings.TrimSpace(strings.ReplaceAll(text, phrase, ""))
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	if len(title) < 3 {
		return "Data Scientist Intern"
	}
	return title
}

func hasHTTPPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
