package radar

import (
	"testing"
	"time"

	"github.com/dori/radial/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTotality(t *testing.T) {
	for d := model.MinPlannableDays; d <= model.MaxPlannableDays; d++ {
		p, err := Classify(d)
		require.NoError(t, err, "day %d", d)
		min, max := p.Region.DayRange()
		require.GreaterOrEqual(t, d, min, "day %d classified into region %d", d, p.Region)
		require.LessOrEqual(t, d, max, "day %d classified into region %d", d, p.Region)
		require.GreaterOrEqual(t, p.Step, 1)
		require.LessOrEqual(t, p.Step, p.Region.Steps())
	}
}

func TestClassifyRejectsOutOfRange(t *testing.T) {
	for _, d := range []int{0, -1, -365, 3651, 10000} {
		_, err := Classify(d)
		assert.ErrorIs(t, err, ErrOutOfRange, "day %d", d)
	}
}

func TestClassifyClampedPinsToEdges(t *testing.T) {
	overdue := ClassifyClamped(-3)
	assert.Equal(t, model.RegionDays, overdue.Region)
	assert.Equal(t, 1, overdue.Step)
	assert.Equal(t, 1, overdue.Days)

	far := ClassifyClamped(5000)
	assert.Equal(t, model.RegionYears, far.Region)
	assert.Equal(t, far.Region.Steps(), far.Step)
	assert.Equal(t, model.MaxPlannableDays, far.Days)
}

func TestStepMonotonicWithinRegion(t *testing.T) {
	for _, r := range []model.Region{model.RegionDays, model.RegionWeeks, model.RegionMonths, model.RegionYears} {
		min, max := r.DayRange()
		prev := 0
		for d := min; d <= max; d++ {
			p := ClassifyClamped(d)
			require.Equal(t, r, p.Region, "day %d", d)
			require.GreaterOrEqual(t, p.Step, prev, "step regressed at day %d", d)
			prev = p.Step
		}
		assert.Equal(t, r.Steps(), prev, "last day of region %d should hit the last step", r)
	}
}

func TestRepresentativeDaysReclassifies(t *testing.T) {
	for _, r := range []model.Region{model.RegionDays, model.RegionWeeks, model.RegionMonths, model.RegionYears} {
		for s := 1; s <= r.Steps(); s++ {
			d := RepresentativeDays(r, s)
			p := ClassifyClamped(d)
			assert.Equal(t, r, p.Region, "region %d step %d -> %d days", r, s, d)
			assert.Equal(t, s, p.Step, "region %d step %d -> %d days", r, s, d)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(today, time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysUntil(today, time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysUntil(today, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysUntil(today, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestScenarioThreeDaysOut(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	p, err := Classify(DaysUntil(today, deadline))
	require.NoError(t, err)
	assert.Equal(t, model.RegionDays, p.Region)
	assert.Equal(t, model.BucketDays, p.Region.Bucket())
	assert.Equal(t, 3, p.Days)
	assert.Equal(t, "3d", CompactLabel(p.Days, p.Region.Bucket()))
}

func TestScenarioOneMonthOut(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	p, err := Classify(DaysUntil(today, deadline))
	require.NoError(t, err)
	assert.Equal(t, model.RegionMonths, p.Region)
	assert.Equal(t, model.BucketMonths, p.Region.Bucket())
	assert.Equal(t, 31, p.Days)
	assert.Equal(t, "1m", CompactLabel(p.Days, p.Region.Bucket()))
}

func TestCompactLabel(t *testing.T) {
	tests := []struct {
		days   int
		bucket model.Bucket
		want   string
	}{
		{1, model.BucketDays, "1d"},
		{7, model.BucketDays, "7d"},
		{8, model.BucketWeeks, "1w"},
		{21, model.BucketWeeks, "3w"},
		{31, model.BucketMonths, "1m"},
		{365, model.BucketMonths, "12m"},
		{366, model.BucketYears, "1y"},
		{3650, model.BucketYears, "10y"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CompactLabel(tc.days, tc.bucket), "%d days in %s", tc.days, tc.bucket)
	}
}

func TestRenormalize(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	finished := time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{
			ID:       "live",
			Deadline: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "done",
			Deadline:      time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			Region:        model.RegionWeeks,
			Bucket:        model.BucketWeeks,
			RemainingDays: 15,
			FinishedAt:    &finished,
		},
	}

	out := Renormalize(tasks, today)

	assert.Equal(t, model.RegionDays, out[0].Region)
	assert.Equal(t, 3, out[0].RemainingDays)

	// Finished tasks keep their frozen placement
	assert.Equal(t, model.RegionWeeks, out[1].Region)
	assert.Equal(t, 15, out[1].RemainingDays)

	// Input slice untouched
	assert.Equal(t, model.Region(0), tasks[0].Region)
}

func TestRenormalizeClampsOverdue(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "late", Deadline: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := Renormalize(tasks, today)
	assert.Equal(t, model.RegionDays, out[0].Region)
	assert.Equal(t, 1, out[0].RemainingDays)
}
