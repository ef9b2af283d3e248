package engine

import (
	"math"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// AssignBucket returns the index of the first bucket whose range contains
// the day offset. Offsets beyond every defined upper bound fall into the
// last (open-ended) bucket. The second return is false for negative
// offsets, which carry no forward risk.
func AssignBucket(buckets []models.BucketDefinition, days int) (int, bool) {
	if days < 0 || len(buckets) == 0 {
		return 0, false
	}
	for i, b := range buckets {
		if b.Contains(days) {
			return i, true
		}
	}
	return len(buckets) - 1, true
}

// BuildGapTable classifies each cash flow into its time band and sums
// inflows and outflows per bucket. Past flows are excluded; every bucket
// appears in the output in definition order, including empty ones.
func BuildGapTable(flows []models.CashFlow, valuationDate time.Time, buckets []models.BucketDefinition) models.GapTable {
	table := make(models.GapTable, len(buckets))
	for i, b := range buckets {
		table[i] = models.GapRow{Bucket: b.Label}
	}
	for _, cf := range flows {
		days := int(math.Floor(daysBetween(valuationDate, cf.Date)))
		idx, ok := AssignBucket(buckets, days)
		if !ok {
			continue
		}
		if cf.Amount >= 0 {
			table[idx].Inflow += cf.Amount
		} else {
			table[idx].Outflow += cf.Amount
		}
		table[idx].NetGap = table[idx].Inflow + table[idx].Outflow
	}
	return table
}
