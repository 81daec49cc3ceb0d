package engine

import (
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// Closest returns the memento whose timestamp minimizes the absolute
// distance to target, and false for an empty timemap. Equal distances
// resolve to the entry encountered first.
//
// Over a sorted timemap the distances to a single target decrease and
// then increase monotonically, so the scan stops at the first entry that
// fails to improve on the best distance seen. An unsorted timemap forces
// a full scan.
func Closest(tm api.TimeMap, target time.Time) (api.Memento, bool) {
	if len(tm) == 0 {
		return api.Memento{}, false
	}

	sorted := tm.IsSorted()
	best := tm[0]
	bestDelta := absDuration(best.DateTime.Sub(target))

	for _, m := range tm[1:] {
		d := absDuration(m.DateTime.Sub(target))
		if d < bestDelta {
			best, bestDelta = m, d
		} else if sorted {
			break
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
