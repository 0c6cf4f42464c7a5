package radar

import (
	"github.com/dori/radial/internal/model"
)

// Lane assignment is a projection over the current task set, recomputed
// every render pass, never stored.

// InsertionLanes assigns each task the next lane in its region in task
// order, wrapping at the region's lane count. Stable for a fixed task
// ordering.
func InsertionLanes(tasks []model.Task, laneCount func(model.Region) int) map[string]int {
	lanes := make(map[string]int, len(tasks))
	seen := make(map[model.Region]int)
	for _, t := range tasks {
		n := laneCount(t.Region)
		if n < 1 {
			n = 1
		}
		lanes[t.ID] = seen[t.Region] % n
		seen[t.Region]++
	}
	return lanes
}

// GroupedLanes puts all tasks sharing an effective color in a region on
// one shared lane. Each distinct color takes the next free lane in the
// order colors are first seen, wrapping at the region's lane count.
func GroupedLanes(tasks []model.Task, laneCount func(model.Region) int) map[string]int {
	lanes := make(map[string]int, len(tasks))
	type key struct {
		region model.Region
		color  string
	}
	colorLane := make(map[key]int)
	next := make(map[model.Region]int)
	for _, t := range tasks {
		n := laneCount(t.Region)
		if n < 1 {
			n = 1
		}
		k := key{region: t.Region, color: t.EffectiveColor()}
		lane, ok := colorLane[k]
		if !ok {
			lane = next[t.Region] % n
			colorLane[k] = lane
			next[t.Region]++
		}
		lanes[t.ID] = lane
	}
	return lanes
}
