package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForProjectIsDeterministic(t *testing.T) {
	a := ColorForProject("renovation")
	b := ColorForProject("renovation")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestColorForEmptyProject(t *testing.T) {
	assert.Equal(t, DefaultColor, ColorForProject(""))
	assert.Equal(t, DefaultColor, ColorForProject("   "))
}

func TestEffectiveColor(t *testing.T) {
	explicit := Task{Project: "home", ProjectColor: "#123456"}
	assert.Equal(t, "#123456", explicit.EffectiveColor())

	derived := Task{Project: "home"}
	assert.Equal(t, ColorForProject("home"), derived.EffectiveColor())

	bare := Task{}
	assert.Equal(t, DefaultColor, bare.EffectiveColor())
}

func TestRegionVocabulary(t *testing.T) {
	assert.True(t, RegionDays.IsValid())
	assert.False(t, Region(0).IsValid())
	assert.False(t, Region(5).IsValid())

	min, max := RegionWeeks.DayRange()
	assert.Equal(t, 8, min)
	assert.Equal(t, 28, max)
	assert.Equal(t, 4, RegionWeeks.Steps())
	assert.Equal(t, BucketWeeks, RegionWeeks.Bucket())
	assert.Equal(t, "★★★", RegionWeeks.Stars())

	assert.Equal(t, RegionMonths, BucketMonths.Region())
	assert.Equal(t, 30, BucketMonths.UnitDays())
	assert.Equal(t, "m", BucketMonths.Suffix())
}
