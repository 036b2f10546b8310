package scraper

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

// internListRowScript collects any row-shaped element whose text carries a
// relative-time phrase. Only the main frame is searched; the embedded
// iframes are cross-origin.
const internListRowScript = `() => {
	const out = [];
	const rows = document.querySelectorAll('tr, [class*="row"], [class*="Row"], .dataRow, [role="row"]');
	for (const row of rows) {
		const text = (row.innerText || row.textContent || '').replace(/\s+/g, ' ');
		if (!/\d+\s*(?:hours?|hrs?|h|minutes?|mins?|m)\s+ago/i.test(text)) continue;
		const link = row.querySelector('a[href*="/da-intern-list/"], a[href*="airtable"], a[href*="apply"]');
		const href = link ? (link.href || link.getAttribute('href') || '') : '';
		const cells = Array.from(row.querySelectorAll('td, th, [class*="cell"], .cell')).map(c => (c.innerText || c.textContent || '').trim()).filter(Boolean);
		out.push({ cells, text: text.slice(0, 600), href });
	}
	return out;
}`

// FetchBrowser loads the hourly-updated main page and accepts rows with an
// in-window relative phrase. Rows here have no path identity, so IDs are
// hash-derived with an il_pw_ prefix to keep them apart from static IDs.
func (s *InternList) FetchBrowser(ctx context.Context, drv *browser.Driver, windowMins int) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := drv.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if _, err := page.Goto(InternListMainURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, err
	}
	page.WaitForTimeout(10000)

	raw, err := page.Evaluate(internListRowScript)
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	for _, item := range sliceValue(raw) {
		var cells []string
		for _, c := range sliceValue(mapValue(item, "cells")) {
			cells = append(cells, stringValue(c))
		}
		text := stringValue(mapValue(item, "text"))
		href := stringValue(mapValue(item, "href"))

		mins, phrase, ok := recency.ParseRelative(text)
		if !ok || mins > windowMins {
			continue
		}

		title := internListRowTitle(cells, text, phrase)
		company := ""
		if len(cells) > 5 {
			company = truncate(stringValue(cells[5], cells[len(cells)-1]), maxCompanyLen)
		}

		target := InternListURL
		if href != "" {
			target = absoluteURL(InternListMainURL, href)
		}

		jobs = append(jobs, models.Job{
			ID:        "il_pw_" + hashID(title, company, phrase),
			Source:    SourceInternList,
			Title:     title,
			Company:   company,
			URL:       target,
			PostedRaw: phrase,
		})
	}
	return jobs, nil
}

// internListRowTitle prefers the first cell; failing that, the row text up
// to the Apply link or the time phrase.
func internListRowTitle(cells []string, text, phrase string) string {
	if len(cells) > 0 && strings.TrimSpace(cells[0]) != "" {
		return truncate(cells[0], maxTitleLen)
	}
	if i := strings.Index(text, "Apply"); i >= 0 {
		if head := strings.TrimSpace(text[:i]); head != "" {
			return truncate(head, maxTitleLen)
		}
	}
	if i := strings.Index(text, phrase); i >= 0 {
		if head := strings.TrimSpace(text[:i]); head != "" {
			return truncate(head, maxTitleLen)
		}
	}
	return "Intern"
}
