package model

// Region is one of four discrete importance/urgency classes.
// Region 4 is the most important+urgent (due within days), region 1
// the least (due within years).
type Region int

const (
	RegionYears  Region = 1
	RegionMonths Region = 2
	RegionWeeks  Region = 3
	RegionDays   Region = 4
)

// Bucket is the time-scale name paired 1:1 with a region
type Bucket string

const (
	BucketDays   Bucket = "days"
	BucketWeeks  Bucket = "weeks"
	BucketMonths Bucket = "months"
	BucketYears  Bucket = "years"
)

// regionSpec describes one region's day range and banding granularity
type regionSpec struct {
	minDays int
	maxDays int
	steps   int
	bucket  Bucket
	stars   string
}

var regionSpecs = map[Region]regionSpec{
	RegionDays:   {minDays: 1, maxDays: 7, steps: 7, bucket: BucketDays, stars: "★★★★"},
	RegionWeeks:  {minDays: 8, maxDays: 28, steps: 4, bucket: BucketWeeks, stars: "★★★"},
	RegionMonths: {minDays: 29, maxDays: 365, steps: 12, bucket: BucketMonths, stars: "★★"},
	RegionYears:  {minDays: 366, maxDays: 3650, steps: 10, bucket: BucketYears, stars: "★"},
}

// MinPlannableDays and MaxPlannableDays bound the day range any region covers.
const (
	MinPlannableDays = 1
	MaxPlannableDays = 3650
)

// IsValid checks if the region is one of the four classes
func (r Region) IsValid() bool {
	_, ok := regionSpecs[r]
	return ok
}

// DayRange returns the inclusive day range the region covers
func (r Region) DayRange() (min, max int) {
	s := regionSpecs[r]
	return s.minDays, s.maxDays
}

// Steps returns the number of discrete radial steps in the region
func (r Region) Steps() int {
	return regionSpecs[r].steps
}

// Bucket returns the time-scale name of the region
func (r Region) Bucket() Bucket {
	return regionSpecs[r].bucket
}

// Stars returns the region's priority label (★ through ★★★★)
func (r Region) Stars() string {
	return regionSpecs[r].stars
}

// UnitDays returns the natural unit of the bucket in days (1/7/30/365)
func (b Bucket) UnitDays() int {
	switch b {
	case BucketWeeks:
		return 7
	case BucketMonths:
		return 30
	case BucketYears:
		return 365
	default:
		return 1
	}
}

// Suffix returns the single-letter label suffix for the bucket
func (b Bucket) Suffix() string {
	switch b {
	case BucketWeeks:
		return "w"
	case BucketMonths:
		return "m"
	case BucketYears:
		return "y"
	default:
		return "d"
	}
}

// Region returns the region paired with the bucket, or 0 if unknown
func (b Bucket) Region() Region {
	switch b {
	case BucketDays:
		return RegionDays
	case BucketWeeks:
		return RegionWeeks
	case BucketMonths:
		return RegionMonths
	case BucketYears:
		return RegionYears
	default:
		return 0
	}
}
