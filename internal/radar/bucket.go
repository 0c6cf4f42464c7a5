// Package radar implements the pure placement math for the urgency map:
// classifying deadlines into regions and steps, mapping placements onto
// the disc, and assigning angular lanes.
package radar

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dori/radial/internal/model"
)

// ErrOutOfRange is returned when a day count does not classify into any
// region (due today/overdue, or more than ten years out).
var ErrOutOfRange = errors.New("deadline out of plannable range (1 day to 10 years)")

// Placement is a task's discrete position in the priority space
type Placement struct {
	Region model.Region
	Step   int // 1..Region.Steps(), higher is more urgent
	Days   int // the (possibly clamped) day count the placement was derived from
}

// DaysUntil returns the signed whole-day count from today to the deadline.
// Both values are reduced to their calendar dates first, so a deadline
// later today is 0 and tomorrow is exactly 1 regardless of time of day.
func DaysUntil(today, deadline time.Time) int {
	return int(math.Round(civilDate(deadline).Sub(civilDate(today)).Hours() / 24))
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify maps a day count to its placement. It rejects day counts
// outside the plannable range; callers on the add/edit path surface that
// error, while import paths use ClassifyClamped instead.
func Classify(days int) (Placement, error) {
	if days < model.MinPlannableDays || days > model.MaxPlannableDays {
		return Placement{}, fmt.Errorf("%w: %d days", ErrOutOfRange, days)
	}
	return ClassifyClamped(days), nil
}

// ClassifyClamped maps a day count to a placement, clamping out-of-range
// values to the nearest plannable edge. Overdue tasks pin to the most
// urgent edge of the days region.
func ClassifyClamped(days int) Placement {
	if days < model.MinPlannableDays {
		days = model.MinPlannableDays
	}
	if days > model.MaxPlannableDays {
		days = model.MaxPlannableDays
	}
	for _, r := range []model.Region{model.RegionDays, model.RegionWeeks, model.RegionMonths, model.RegionYears} {
		min, max := r.DayRange()
		if days >= min && days <= max {
			return Placement{Region: r, Step: stepFor(r, days), Days: days}
		}
	}
	// Unreachable: the four ranges cover [MinPlannableDays, MaxPlannableDays]
	return Placement{Region: model.RegionDays, Step: 1, Days: model.MinPlannableDays}
}

// stepFor interpolates a day count across the region's range into a
// 1-based step index
func stepFor(r model.Region, days int) int {
	min, max := r.DayRange()
	n := r.Steps()
	if n <= 1 || max == min {
		return 1
	}
	frac := float64(days-min) / float64(max-min)
	step := int(math.Round(frac*float64(n-1))) + 1
	if step < 1 {
		step = 1
	}
	if step > n {
		step = n
	}
	return step
}

// Progress returns the normalized [0,1] urgency of a step within its
// region: 0 at step 1 (calmest edge), 1 at the last step.
func Progress(r model.Region, step int) float64 {
	n := r.Steps()
	if n <= 1 {
		return 0
	}
	if step < 1 {
		step = 1
	}
	if step > n {
		step = n
	}
	return float64(step-1) / float64(n-1)
}

// RepresentativeDays inverts stepFor, returning the center of the step's
// day interval. Round-tripping through Classify lands back on the same
// (region, step) but not necessarily on the original day count.
func RepresentativeDays(r model.Region, step int) int {
	min, max := r.DayRange()
	n := r.Steps()
	if n <= 1 {
		return min
	}
	if step < 1 {
		step = 1
	}
	if step > n {
		step = n
	}
	return min + int(math.Round(float64(step-1)*float64(max-min)/float64(n-1)))
}

// CompactLabel renders a day count in the bucket's natural unit,
// e.g. 3 days -> "3d", 31 days in the months bucket -> "1m".
func CompactLabel(days int, b model.Bucket) string {
	n := int(math.Round(float64(days) / float64(b.UnitDays())))
	if n < 1 {
		n = 1
	}
	return fmt.Sprintf("%d%s", n, b.Suffix())
}

// Renormalize reclassifies every unfinished task against a new reference
// date and returns a fresh slice. Finished tasks keep the placement they
// had when completed.
func Renormalize(tasks []model.Task, today time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].IsFinished() {
			continue
		}
		p := ClassifyClamped(DaysUntil(today, out[i].Deadline))
		out[i].Region = p.Region
		out[i].Bucket = p.Region.Bucket()
		out[i].RemainingDays = p.Days
	}
	return out
}
