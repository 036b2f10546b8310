package recency

import "time"

// eastern resolves once; the tz database can be absent on minimal runners,
// in which case a fixed EST offset stands in.
var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}()

// FormatEastern renders a Unix-millisecond timestamp as US Eastern time,
// e.g. "Feb 13, 2026 09:41 AM EST". Returns "" for zero/negative input.
func FormatEastern(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).In(eastern).Format("Jan 02, 2006 03:04 PM MST")
}

// NowEastern is the current wall clock in US Eastern, used for digest headers.
func NowEastern(now time.Time) string {
	return now.In(eastern).Format("Jan 02, 2006 03:04 PM MST")
}
