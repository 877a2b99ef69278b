// Package resolve implements source-of-truth resolution: given normalized
// activity records that may describe the same real-world event from several
// sources, it produces a single deduplicated, chronologically ordered
// timeline.
//
// Resolution is a deterministic function of input order. Callers that feed
// overlapping batches for the same user must serialize at their persistence
// layer; the resolver assumes one complete batch per invocation.
package resolve

import (
	"sort"

	"github.com/pulseboard/backend/internal/models"
)

// overlapThreshold is the fraction of the shorter record's duration that
// must intersect before two records are treated as one event. Strictly
// greater-than: an exact 50% overlap is two distinct events.
const overlapThreshold = 0.5

// sourcePriority is the fixed trust ranking used to pick a winner among
// duplicates. Hardware-backed sources outrank third-party apps, which
// outrank manual entry. Unlisted sources rank zero. Process-wide immutable.
var sourcePriority = map[string]int{
	"apple_health":   10,
	"health_connect": 10,
	"strava":         8,
	"fitbit":         8,
	"oura":           8,
	"withings":       8,
	"manual":         5,
}

// Priority returns the trust rank for a source; unknown sources rank 0.
func Priority(source string) int {
	return sourcePriority[source]
}

// Resolve deduplicates activities that represent the same real-world event.
// Timed records are returned in chronological order with duplicates
// collapsed to the highest-trust source; records without a start time
// bypass overlap detection and follow in their original order.
//
// Resolve never fails: records it cannot compare are kept, not dropped.
func Resolve(activities []models.NormalizedActivity) []models.NormalizedActivity {
	if len(activities) <= 1 {
		return activities
	}

	var timed, untimed []models.NormalizedActivity
	for _, a := range activities {
		if a.StartTime != nil {
			timed = append(timed, a)
		} else {
			untimed = append(untimed, a)
		}
	}

	// Stable sort keeps input order for identical start times, which the
	// tie-break below depends on.
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].StartTime.Before(*timed[j].StartTime)
	})

	resolved := make([]models.NormalizedActivity, 0, len(timed)+len(untimed))
	if len(timed) > 0 {
		current := timed[0]
		for _, next := range timed[1:] {
			if overlapRatio(&current, &next) > overlapThreshold {
				// Same real-world event: higher trust wins, ties keep the
				// earlier record.
				if Priority(next.Source) > Priority(current.Source) {
					current = next
				}
				continue
			}
			resolved = append(resolved, current)
			current = next
		}
		resolved = append(resolved, current)
	}

	return append(resolved, untimed...)
}

// overlapRatio computes the temporal intersection of two records as a
// fraction of the shorter record's duration. Records with zero or negative
// duration are too short to compare and never overlap.
func overlapRatio(a, b *models.NormalizedActivity) float64 {
	if a.DurationSeconds <= 0 || b.DurationSeconds <= 0 {
		return 0
	}

	endA := a.StartTime.Unix() + int64(a.DurationSeconds)
	endB := b.StartTime.Unix() + int64(b.DurationSeconds)

	start := a.StartTime.Unix()
	if s := b.StartTime.Unix(); s > start {
		start = s
	}
	end := endA
	if endB < end {
		end = endB
	}

	overlap := end - start
	if overlap <= 0 {
		return 0
	}

	shorter := a.DurationSeconds
	if b.DurationSeconds < shorter {
		shorter = b.DurationSeconds
	}

	return float64(overlap) / float64(shorter)
}
