package models

import "time"

// Job is the canonical posting produced by every source normalizer.
// Sources that only know a relative phrase ("2 hours ago") leave Posted nil
// and carry the phrase in PostedRaw; calendar-dated sources set both.
type Job struct {
	ID            string     `json:"id"`
	Source        string     `json:"source"`
	Title         string     `json:"title"`
	Company       string     `json:"company,omitempty"`
	URL           string     `json:"url"`
	Posted        *time.Time `json:"posted,omitempty"`
	PostedRaw     string     `json:"posted_raw"`
	PostedMillis  int64      `json:"posted_ms,omitempty"`
	PostedEastern string     `json:"posted_est,omitempty"`
}

// Display returns the recency string shown to the user, preferring the
// localized absolute time when the source supplied millisecond timestamps.
func (j Job) Display() string {
	if j.PostedEastern != "" {
		return j.PostedEastern
	}
	return j.PostedRaw
}
