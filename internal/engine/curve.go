package engine

import (
	"sort"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// BuildTenorCurve resolves a tenor curve from observed market points: the
// points are sorted by tenor, linearly interpolated (and linearly
// extrapolated beyond the observed range) at each target tenor, and the
// liquidity spread is added to every resolved rate.
func BuildTenorCurve(points []models.MarketPoint, targetTenors []int, liquiditySpreadBps float64) (models.TenorCurve, error) {
	if len(points) < 2 {
		return models.TenorCurve{}, ErrInsufficientCurveData
	}

	sorted := make([]models.MarketPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TenorMonths < sorted[j].TenorMonths
	})

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = float64(p.TenorMonths)
		ys[i] = p.Rate
	}

	spread := liquiditySpreadBps / 10000.0
	curve := models.TenorCurve{
		Tenors: make([]int, len(targetTenors)),
		Rates:  make([]float64, len(targetTenors)),
	}
	for i, tenor := range targetTenors {
		curve.Tenors[i] = tenor
		curve.Rates[i] = interpolate(xs, ys, float64(tenor)) + spread
	}
	return curve, nil
}

// ToDateCurve converts a tenor curve into its date-indexed form: each
// tenor maps to valuationDate + tenor months, preserving the rate.
func ToDateCurve(curve models.TenorCurve, valuationDate time.Time) models.DateCurve {
	dc := models.DateCurve{
		Dates: make([]time.Time, len(curve.Tenors)),
		Rates: make([]float64, len(curve.Tenors)),
	}
	for i, tenor := range curve.Tenors {
		dc.Dates[i] = addMonths(valuationDate, tenor)
		dc.Rates[i] = curve.Rates[i]
	}
	return dc
}

// RateAtTenor returns the curve's linearly interpolated rate at a tenor
// offset in months.
func RateAtTenor(curve models.TenorCurve, tenorMonths float64) float64 {
	if len(curve.Tenors) == 0 {
		return 0
	}
	if len(curve.Tenors) == 1 {
		return curve.Rates[0]
	}
	xs := make([]float64, len(curve.Tenors))
	for i, t := range curve.Tenors {
		xs[i] = float64(t)
	}
	return interpolate(xs, curve.Rates, tenorMonths)
}

// rateAtDate returns the date curve's linearly interpolated rate at a
// calendar date, working on day offsets from the valuation date.
func rateAtDate(curve models.DateCurve, valuationDate, at time.Time) float64 {
	if len(curve.Dates) == 0 {
		return 0
	}
	if len(curve.Dates) == 1 {
		return curve.Rates[0]
	}
	xs := make([]float64, len(curve.Dates))
	for i, d := range curve.Dates {
		xs[i] = daysBetween(valuationDate, d)
	}
	return interpolate(xs, curve.Rates, daysBetween(valuationDate, at))
}

// interpolate evaluates a piecewise-linear function at x, extending the
// boundary segments linearly outside the observed range. xs must be
// sorted ascending with at least two entries.
func interpolate(xs, ys []float64, x float64) float64 {
	i := sort.SearchFloat64s(xs, x)
	if i <= 0 {
		i = 1
	} else if i >= len(xs) {
		i = len(xs) - 1
	}
	x1, x2 := xs[i-1], xs[i]
	y1, y2 := ys[i-1], ys[i]
	if x2 == x1 {
		return y1
	}
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
