// Package scraper converts each source's raw payload into canonical job
// records. Payload shapes differ enough per source that each keeps its own
// extraction code; only the output type is shared.
package scraper

const (
	SourceInternList = "intern-list"
	SourceJobright   = "jobright"
	SourceAirtable   = "airtable"
)
