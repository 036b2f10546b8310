// Package dedup turns per-source batches into the ordered novel batch for
// one digest.
package dedup

import (
	"sort"

	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/seen"
)

// IsNovel reports whether id has not been seen before. Read-only; Merge is
// what actually marks IDs.
func IsNovel(id string, set *seen.Set) bool {
	return !set.Has(id)
}

// Merge concatenates all source batches in arrival order, marks every
// encountered ID as seen (novel or not; repeat sightings must never
// re-alert), and keeps only the entries that were novel at encounter time.
//
// Ordering: jobs without an absolute timestamp come first as a block in
// arrival order, relative-phrase sources being assumed newer than stale
// calendar-dated ones, then timestamped jobs, most recent first.
func Merge(results []models.SourceResult, set *seen.Set) []models.Job {
	var novel []models.Job
	for _, res := range results {
		for _, job := range res.Jobs {
			if set.Mark(job.ID) {
				novel = append(novel, job)
			}
		}
	}

	sort.SliceStable(novel, func(i, j int) bool {
		a, b := novel[i].Posted, novel[j].Posted
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.After(*b)
		}
	})
	return novel
}
