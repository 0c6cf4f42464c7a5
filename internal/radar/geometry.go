package radar

import (
	"math"

	"github.com/dori/radial/internal/model"
)

// Radial placement constants. Step 1 of a region sits on the innermost
// guide ring, the last step just inside the outer label band.
const (
	MinRadiusFrac = 0.25
	MaxRadiusFrac = 0.97

	// Pointer positions closer than this to the center are ignored;
	// the angle there is degenerate.
	CenterDeadZone = 5.0

	wedgeSpan = 90.0
)

// wedgeStarts fixes each region's 90-degree wedge. The four wedges
// partition the circle; the assignment is a design constant.
var wedgeStarts = map[model.Region]float64{
	model.RegionWeeks:  0,
	model.RegionDays:   90,
	model.RegionMonths: 180,
	model.RegionYears:  270,
}

// Disc describes the drawing surface: center point and usable radius
// (outer padding for labels excluded).
type Disc struct {
	CX   float64
	CY   float64
	MaxR float64
}

// WedgeStart returns the starting angle in degrees of the region's wedge
func WedgeStart(r model.Region) float64 {
	return wedgeStarts[r]
}

// Radius returns the distance from center for a given urgency progress
func (d Disc) Radius(progress float64) float64 {
	return d.MaxR * (MinRadiusFrac + (MaxRadiusFrac-MinRadiusFrac)*progress)
}

// Place maps a placement and lane onto screen coordinates. The lane picks
// an angle at the center of its even subdivision of the region's wedge;
// the step picks the radius. Screen y grows downward.
func (d Disc) Place(p Placement, lane, lanesInRegion int) (x, y float64) {
	if lanesInRegion < 1 {
		lanesInRegion = 1
	}
	lane = lane % lanesInRegion
	angle := WedgeStart(p.Region) + wedgeSpan*(float64(lane)+0.5)/float64(lanesInRegion)
	r := d.Radius(Progress(p.Region, p.Step))
	rad := angle * math.Pi / 180
	return d.CX + r*math.Cos(rad), d.CY - r*math.Sin(rad)
}

// Locate inverts Place for pointer interaction: it maps screen
// coordinates back to the (region, step) under the pointer. ok is false
// inside the center dead zone, where no placement can be derived.
func (d Disc) Locate(x, y float64) (p Placement, ok bool) {
	dx := x - d.CX
	dy := d.CY - y
	dist := math.Hypot(dx, dy)
	if dist < CenterDeadZone {
		return Placement{}, false
	}

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	for angle < 0 {
		angle += 360
	}
	for angle >= 360 {
		angle -= 360
	}
	region := regionAtAngle(angle)

	minR := d.MaxR * MinRadiusFrac
	maxR := d.MaxR * MaxRadiusFrac
	if dist < minR {
		dist = minR
	}
	if dist > maxR {
		dist = maxR
	}
	progress := (dist/d.MaxR - MinRadiusFrac) / (MaxRadiusFrac - MinRadiusFrac)

	n := region.Steps()
	step := int(math.Round(progress*float64(n-1))) + 1
	if step < 1 {
		step = 1
	}
	if step > n {
		step = n
	}
	return Placement{Region: region, Step: step, Days: RepresentativeDays(region, step)}, true
}

func regionAtAngle(angle float64) model.Region {
	switch {
	case angle < 90:
		return model.RegionWeeks
	case angle < 180:
		return model.RegionDays
	case angle < 270:
		return model.RegionMonths
	default:
		return model.RegionYears
	}
}
