package scraper

import (
	"context"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

// airtableRowScript pairs the left and right data panes by row index and
// returns each row's cell texts plus the whole row text, which catches the
// relative-time phrase wherever the view puts it.
const airtableRowScript = `() => {
	const leftRows = document.querySelectorAll('.dataLeftPane .dataRow[data-rowid]');
	const rightRows = document.querySelectorAll('.dataRightPane .dataRow[data-rowid]');
	const result = [];
	const n = Math.min(leftRows.length, rightRows.length);
	for (let i = 0; i < n; i++) {
		const leftCells = Array.from(leftRows[i].querySelectorAll('.cell')).map(c => (c.innerText || c.textContent || '').trim()).filter(Boolean);
		const rightCells = Array.from(rightRows[i].querySelectorAll('.cell')).map(c => (c.innerText || c.textContent || '').trim()).filter(Boolean);
		const rowText = ((leftRows[i].innerText || '') + ' ' + (rightRows[i].innerText || '')).trim();
		result.push({ cells: [...leftCells, ...rightCells], rowText });
	}
	return result;
}`

// FetchBrowser renders the embed and walks the visible table rows. A row is
// accepted on an in-window relative phrase, or on a date column equal to
// today/yesterday (the table stores bare dates for most rows).
func (s *Airtable) FetchBrowser(ctx context.Context, drv *browser.Driver, now time.Time) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := drv.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if _, err := page.Goto(AirtableEmbedURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(45000),
	}); err != nil {
		return nil, err
	}
	if _, err := page.WaitForSelector(".dataRow", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(20000),
	}); err != nil {
		return nil, err
	}
	page.WaitForTimeout(6000)

	raw, err := page.Evaluate(airtableRowScript)
	if err != nil {
		return nil, err
	}

	var jobs []models.Job
	for _, item := range sliceValue(raw) {
		var cells []string
		for _, c := range sliceValue(mapValue(item, "cells")) {
			cells = append(cells, stringValue(c))
		}
		if len(cells) < 2 {
			continue
		}
		rowText := stringValue(mapValue(item, "rowText"))

		title := truncate(cells[0], maxTitleLen)
		if title == "" {
			continue
		}
		company := ""
		if len(cells) > 5 {
			company = truncate(cells[5], maxCompanyLen)
		}

		dateStr := ""
		for _, chunk := range append(append([]string{}, cells...), rowText) {
			if mins, phrase, ok := recency.ParseRelative(chunk); ok && mins <= s.windowMins {
				dateStr = phrase
				break
			}
		}
		if dateStr == "" {
			for _, c := range cells {
				if day, ok := recency.DateRecent(c, now); ok {
					dateStr = day
					break
				}
			}
		}
		if dateStr == "" {
			continue
		}

		jobs = append(jobs, models.Job{
			ID:        "at_" + hashID(title, company, dateStr),
			Source:    SourceAirtable,
			Title:     title,
			Company:   company,
			URL:       AirtableEmbedURL,
			PostedRaw: dateStr,
		})
	}
	return jobs, nil
}
