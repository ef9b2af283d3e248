package models

// BucketDefinition is one regulatory time band, measured in days from the
// valuation date. MaxDays < 0 marks the open-ended final band.
type BucketDefinition struct {
	Label   string `json:"label"`
	MinDays int    `json:"min_days"`
	MaxDays int    `json:"max_days"`
}

// OpenEnded reports whether the band has no upper bound.
func (b BucketDefinition) OpenEnded() bool {
	return b.MaxDays < 0
}

// Contains reports whether a non-negative day offset falls in the band.
func (b BucketDefinition) Contains(days int) bool {
	if days < b.MinDays {
		return false
	}
	return b.OpenEnded() || days <= b.MaxDays
}

// DefaultBaselBuckets returns the nine-band Basel bucket schedule used for
// gap reporting (0-1M, 1-3M, 3-6M, 6-12M, 1-2Y, 2-3Y, 3-5Y, 5-10Y, >10Y).
func DefaultBaselBuckets() []BucketDefinition {
	return []BucketDefinition{
		{Label: "0M-1M", MinDays: 0, MaxDays: 30},
		{Label: "1M-3M", MinDays: 31, MaxDays: 90},
		{Label: "3M-6M", MinDays: 91, MaxDays: 180},
		{Label: "6M-12M", MinDays: 181, MaxDays: 365},
		{Label: "1Y-2Y", MinDays: 366, MaxDays: 730},
		{Label: "2Y-3Y", MinDays: 731, MaxDays: 1095},
		{Label: "3Y-5Y", MinDays: 1096, MaxDays: 1825},
		{Label: "5Y-10Y", MinDays: 1826, MaxDays: 3650},
		{Label: "10Y-Over", MinDays: 3651, MaxDays: -1},
	}
}
