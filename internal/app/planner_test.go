package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dori/radial/internal/model"
	"github.com/dori/radial/internal/radar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestPlanner builds a memory-only planner pinned to a fixed date
func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := NewPlanner(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	p.SetToday(testToday)
	return p
}

func deadline(days int) time.Time {
	return testToday.AddDate(0, 0, days)
}

func TestAddDerivesPlacement(t *testing.T) {
	p := newTestPlanner(t)

	task, err := p.Add("water the plants", "home", "", "", deadline(3))
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.RegionDays, task.Region)
	assert.Equal(t, model.BucketDays, task.Bucket)
	assert.Equal(t, 3, task.RemainingDays)
	assert.Equal(t, "3d", radar.CompactLabel(task.RemainingDays, task.Bucket))
}

func TestAddRejectsEmptyDescription(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.Add("", "home", "", "", deadline(3))
	assert.ErrorIs(t, err, ErrEmptyDescription)
	assert.Empty(t, p.Tasks())
}

func TestAddRejectsUnclassifiableDeadlines(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.Add("due today", "", "", "", deadline(0))
	assert.ErrorIs(t, err, radar.ErrOutOfRange)

	_, err = p.Add("overdue", "", "", "", deadline(-5))
	assert.ErrorIs(t, err, radar.ErrOutOfRange)

	_, err = p.Add("too far out", "", "", "", deadline(4000))
	assert.ErrorIs(t, err, radar.ErrOutOfRange)

	assert.Empty(t, p.Tasks())
}

func TestCapacityEnforcement(t *testing.T) {
	p := newTestPlanner(t)
	require.NoError(t, p.SetCapacity(model.RegionDays, 2))

	_, err := p.Add("first", "", "", "", deadline(2))
	require.NoError(t, err)
	_, err = p.Add("second", "", "", "", deadline(3))
	require.NoError(t, err)

	_, err = p.Add("third", "", "", "", deadline(4))
	assert.ErrorIs(t, err, ErrRegionFull)
	assert.Len(t, p.Tasks(), 2)

	// Finished tasks do not count against capacity
	first := p.Tasks()[0]
	_, err = p.ToggleDone(first.ID)
	require.NoError(t, err)
	_, err = p.Add("third", "", "", "", deadline(4))
	assert.NoError(t, err)
}

func TestEditRecomputesAndChecksDestination(t *testing.T) {
	p := newTestPlanner(t)

	task, err := p.Add("plan trip", "travel", "", "", deadline(3))
	require.NoError(t, err)

	edited, err := p.Edit(task.ID, "plan trip", "travel", "", "", deadline(15))
	require.NoError(t, err)
	assert.Equal(t, model.RegionWeeks, edited.Region)
	assert.Equal(t, 15, edited.RemainingDays)

	// Destination at capacity blocks the move
	require.NoError(t, p.SetCapacity(model.RegionMonths, 1))
	_, err = p.Add("blocker", "", "", "", deadline(60))
	require.NoError(t, err)
	_, err = p.Edit(task.ID, "plan trip", "travel", "", "", deadline(90))
	assert.ErrorIs(t, err, ErrRegionFull)

	// Unchanged after the rejected edit
	got := p.Tasks()[0]
	assert.Equal(t, model.RegionWeeks, got.Region)
}

func TestDeleteRemovesTask(t *testing.T) {
	p := newTestPlanner(t)

	task, err := p.Add("temp", "", "", "", deadline(3))
	require.NoError(t, err)

	require.NoError(t, p.Delete(task.ID))
	assert.Empty(t, p.Tasks())

	assert.ErrorIs(t, p.Delete(task.ID), ErrTaskNotFound)
}

func TestFinishedTasksFreeze(t *testing.T) {
	p := newTestPlanner(t)

	frozen, err := p.Add("ship release", "", "", "", deadline(3))
	require.NoError(t, err)
	live, err := p.Add("write notes", "", "", "", deadline(20))
	require.NoError(t, err)

	_, err = p.ToggleDone(frozen.ID)
	require.NoError(t, err)

	p.SetToday(testToday.AddDate(0, 0, 10))

	tasks := p.Tasks()
	byID := map[string]model.Task{}
	for _, t2 := range tasks {
		byID[t2.ID] = t2
	}

	// Finished placement untouched by the moving reference date
	assert.Equal(t, model.RegionDays, byID[frozen.ID].Region)
	assert.Equal(t, 3, byID[frozen.ID].RemainingDays)

	// Live task renormalized: 20 days shrank to 10
	assert.Equal(t, model.RegionWeeks, byID[live.ID].Region)
	assert.Equal(t, 10, byID[live.ID].RemainingDays)
}

func TestDragReclassifies(t *testing.T) {
	p := newTestPlanner(t)
	disc := radar.Disc{CX: 200, CY: 200, MaxR: 180}

	task, err := p.Add("refactor parser", "", "", "", deadline(3))
	require.NoError(t, err)

	// Drop the dot where weeks step 2 renders
	target := radar.Placement{Region: model.RegionWeeks, Step: 2}
	x, y := disc.Place(target, 0, p.LaneCount(model.RegionWeeks))
	require.NoError(t, p.Drag(task.ID, disc, x, y))

	got := p.Tasks()[0]
	assert.Equal(t, model.RegionWeeks, got.Region)
	assert.Equal(t, model.BucketWeeks, got.Bucket)

	// The new remaining days reclassify to the dropped (region, step)
	back := radar.ClassifyClamped(got.RemainingDays)
	assert.Equal(t, model.RegionWeeks, back.Region)
	assert.Equal(t, 2, back.Step)

	// Deadline moved to match
	assert.Equal(t, got.RemainingDays, radar.DaysUntil(p.Today(), got.Deadline))
}

func TestDragIntoFullRegionRejected(t *testing.T) {
	p := newTestPlanner(t)
	disc := radar.Disc{CX: 200, CY: 200, MaxR: 180}
	require.NoError(t, p.SetCapacity(model.RegionWeeks, 1))

	_, err := p.Add("blocker", "", "", "", deadline(15))
	require.NoError(t, err)
	task, err := p.Add("mover", "", "", "", deadline(3))
	require.NoError(t, err)

	x, y := disc.Place(radar.Placement{Region: model.RegionWeeks, Step: 2}, 0, 1)
	err = p.Drag(task.ID, disc, x, y)
	assert.ErrorIs(t, err, ErrRegionFull)

	// Position unchanged
	var got model.Task
	for _, t2 := range p.Tasks() {
		if t2.ID == task.ID {
			got = t2
		}
	}
	assert.Equal(t, model.RegionDays, got.Region)
	assert.Equal(t, 3, got.RemainingDays)
}

func TestDragCenterDeadZoneIsNoop(t *testing.T) {
	p := newTestPlanner(t)
	disc := radar.Disc{CX: 200, CY: 200, MaxR: 180}

	task, err := p.Add("steady", "", "", "", deadline(3))
	require.NoError(t, err)

	require.NoError(t, p.Drag(task.ID, disc, disc.CX+1, disc.CY-1))
	assert.Equal(t, model.RegionDays, p.Tasks()[0].Region)
	assert.Equal(t, 3, p.Tasks()[0].RemainingDays)
}

func TestImportReplacesWholeList(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.Add("old task", "", "", "", deadline(3))
	require.NoError(t, err)

	csv := "id,date,deadline,project,task\n" +
		"n1,2024-01-01,2024-01-06,home,imported one\n" +
		"n2,2024-01-01,2024-03-01,work,imported two\n"
	n, err := p.ImportCSV([]byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tasks := p.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "n1", tasks[0].ID)
	assert.Equal(t, model.RegionDays, tasks[0].Region)
	assert.Equal(t, model.RegionMonths, tasks[1].Region)
}

func TestEmptyImportLeavesTasksUntouched(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.Add("keep me", "", "", "", deadline(3))
	require.NoError(t, err)

	_, err = p.ImportCSV([]byte("id,deadline,task\n"))
	assert.Error(t, err)
	assert.Len(t, p.Tasks(), 1)
}

func TestExportUsesStoredBaseName(t *testing.T) {
	p := newTestPlanner(t)
	p.SetExportBase("plans")

	_, err := p.Add("something", "", "", "", deadline(3))
	require.NoError(t, err)

	data, name, err := p.ExportCSV()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "plans_"+time.Now().Format("2006-01-02")+".csv", name)
}

func TestSetCapacityValidation(t *testing.T) {
	p := newTestPlanner(t)

	assert.ErrorIs(t, p.SetCapacity(model.RegionDays, 0), ErrInvalidCapacity)
	assert.Error(t, p.SetCapacity(model.Region(9), 5))
	require.NoError(t, p.SetCapacity(model.RegionDays, 3))
	assert.Equal(t, 3, p.Capacity(model.RegionDays))
}
