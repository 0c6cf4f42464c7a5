package radar

import (
	"testing"

	"github.com/dori/radial/internal/model"
	"github.com/stretchr/testify/assert"
)

func fixedLanes(n int) func(model.Region) int {
	return func(model.Region) int { return n }
}

func TestInsertionLanes(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Region: model.RegionDays},
		{ID: "b", Region: model.RegionDays},
		{ID: "c", Region: model.RegionWeeks},
		{ID: "d", Region: model.RegionDays},
	}

	lanes := InsertionLanes(tasks, fixedLanes(2))
	assert.Equal(t, 0, lanes["a"])
	assert.Equal(t, 1, lanes["b"])
	assert.Equal(t, 0, lanes["c"], "counts are per region")
	assert.Equal(t, 0, lanes["d"], "wraps at the lane count")
}

func TestGroupedLanesSharesColorLanes(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Region: model.RegionDays, Project: "home"},
		{ID: "b", Region: model.RegionDays, Project: "work"},
		{ID: "c", Region: model.RegionDays, Project: "home"},
		{ID: "d", Region: model.RegionWeeks, Project: "home"},
	}

	lanes := GroupedLanes(tasks, fixedLanes(4))
	assert.Equal(t, lanes["a"], lanes["c"], "same project shares a lane")
	assert.NotEqual(t, lanes["a"], lanes["b"], "distinct projects get distinct lanes")
	assert.Equal(t, 0, lanes["d"], "lane memo is per region")
}

func TestGroupedLanesExplicitColorWins(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Region: model.RegionDays, Project: "home", ProjectColor: "#ff0000"},
		{ID: "b", Region: model.RegionDays, Project: "away", ProjectColor: "#ff0000"},
	}

	lanes := GroupedLanes(tasks, fixedLanes(4))
	assert.Equal(t, lanes["a"], lanes["b"], "grouping is by effective color, not project name")
}

func TestGroupedLanesWraps(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Region: model.RegionDays, ProjectColor: "#111111"},
		{ID: "b", Region: model.RegionDays, ProjectColor: "#222222"},
		{ID: "c", Region: model.RegionDays, ProjectColor: "#333333"},
	}

	lanes := GroupedLanes(tasks, fixedLanes(2))
	assert.Equal(t, 0, lanes["a"])
	assert.Equal(t, 1, lanes["b"])
	assert.Equal(t, 0, lanes["c"], "colors beyond capacity wrap via modulo")
}
