// Package recency decides whether a posting is fresh enough to alert on.
// Sources report age as free-text relative phrases ("2 hours ago"), absolute
// calendar dates, or millisecond timestamps; everything funnels through here.
package recency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/suhasramanand/intern-alert/internal/models"
)

// DefaultWindowMinutes is the alerting window: jobs older than this are stale.
const DefaultWindowMinutes = 120

var relativePattern = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m)\s+ago`)

// ParseRelative searches anywhere in text for "<N> <unit> ago" and returns
// the age in minutes plus the matched phrase. Units h/hr/hour count as hours,
// m/min/minute as minutes, with or without the plural s.
func ParseRelative(text string) (int, string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", false
	}
	m := relativePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	mins := n
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		mins = n * 60
	}
	return mins, strings.TrimSpace(m[0]), true
}

// WithinWindow reports whether text carries a relative phrase no older than
// windowMins. The boundary is inclusive.
func WithinWindow(text string, windowMins int) bool {
	mins, _, ok := ParseRelative(text)
	return ok && mins <= windowMins
}

// ParseAbsolute is a strict single-layout parse. A mismatch means "no
// absolute time known", never an error.
func ParseAbsolute(value string, layout string) (time.Time, bool) {
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// JobInWindow applies the full recency policy: a relative phrase within the
// window wins; otherwise an absolute timestamp within the window; otherwise,
// for date-only postings (midnight timestamps), the posting date must be
// today or yesterday UTC. Sources that report only a calendar date still get
// same-day postings through on that last rule.
func JobInWindow(j models.Job, windowMins int, now time.Time) bool {
	if WithinWindow(j.PostedRaw, windowMins) {
		return true
	}
	if j.Posted == nil {
		return false
	}
	posted := j.Posted.UTC()
	now = now.UTC()
	delta := now.Sub(posted)
	if delta >= 0 && delta <= time.Duration(windowMins)*time.Minute {
		return true
	}
	if delta > 0 && posted.Hour() == 0 && posted.Minute() == 0 {
		yesterday := now.AddDate(0, 0, -1)
		yy, ym, yd := yesterday.Date()
		floor := time.Date(yy, ym, yd, 0, 0, 0, 0, time.UTC)
		if !posted.Before(floor) {
			return true
		}
	}
	return false
}

// DateRecent reports whether value starts with a YYYY-MM-DD date equal to
// today or yesterday UTC, returning the date string it matched. Table-backed
// sources show a bare date column for same-day postings.
func DateRecent(value string, now time.Time) (string, bool) {
	s := strings.TrimSpace(value)
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if d.Equal(today) || d.Equal(today.AddDate(0, 0, -1)) {
		return s, true
	}
	return "", false
}

// RelativeLabel renders an elapsed-minutes value the way the sources phrase
// it, singular and plural aware.
func RelativeLabel(mins int) string {
	if mins < 60 {
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	}
	hrs := mins / 60
	if hrs == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hrs)
}
