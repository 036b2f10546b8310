// Package digest renders the outgoing message for one run.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

// Subject line for a batch of n novel postings.
func Subject(n int) string {
	return fmt.Sprintf("Intern alert: %d new DS/ML/Analytics internships", n)
}

// Body renders the plain-text digest, one paragraph per posting, newest
// first as ordered by the deduplicator.
func Body(jobs []models.Job, windowMins int, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DS/Analytics/ML internships (new in last %s, latest first)\n(Current time: %s)\n\n", windowLabel(windowMins), recency.NowEastern(now))
	for _, job := range jobs {
		fmt.Fprintf(&b, "- %s | %s\n  Posted: %s\n  %s\n\n", job.Title, job.Company, job.Display(), job.URL)
	}
	return b.String()
}

func windowLabel(mins int) string {
	if mins%60 == 0 {
		return fmt.Sprintf("%dhr", mins/60)
	}
	return fmt.Sprintf("%dmin", mins)
}
