package scraper

import (
	"fmt"
	"hash/fnv"
	"html"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	maxTitleLen   = 200
	maxCompanyLen = 100
)

// cleanText unescapes entities, NFC-normalizes scraped DOM text, and
// collapses runs of whitespace.
func cleanText(value string) string {
	value = html.UnescapeString(value)
	value = norm.NFC.String(value)
	return strings.Join(strings.Fields(value), " ")
}

func truncate(value string, max int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return strings.TrimSpace(string(runes[:max]))
}

// hashID derives a stable 10-digit identity for sources without a structural
// ID. Title drift upstream changes the ID for the same posting; that repeat
// alert is an accepted risk.
func hashID(title, company, dateStr string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", title, company, dateStr)
	return fmt.Sprintf("%d", h.Sum64()%1e10)
}

// stripQuery drops everything after the first "?". Apply links carry
// per-fetch tracking parameters that would break identity and dedup.
func stripQuery(raw string) string {
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i]
	}
	return raw
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// stringValue pulls the first usable string out of loosely typed JSON or
// browser-evaluate values.
func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case map[string]any:
			// Airtable cells wrap values: {displayValue, value}
			if s := stringValue(v["displayValue"], v["value"], v["name"]); s != "" {
				return s
			}
		}
	}
	return ""
}

func mapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

func sliceValue(value any) []any {
	s, _ := value.([]any)
	return s
}
