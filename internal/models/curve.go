package models

import "time"

// MarketPoint is one observed market quote: an annual rate at a tenor
// expressed in months from the valuation date.
type MarketPoint struct {
	TenorMonths int     `json:"tenor_months"`
	Rate        float64 `json:"rate"`
}

// TenorCurve is a rate function indexed by tenor offsets in months.
// Tenors and Rates are parallel slices sorted by ascending tenor.
type TenorCurve struct {
	Tenors []int     `json:"tenors"`
	Rates  []float64 `json:"rates"`
}

// DateCurve is a rate function indexed by calendar dates, derived from a
// TenorCurve and a valuation date. Dates and Rates are parallel slices
// sorted by ascending date.
type DateCurve struct {
	Dates []time.Time `json:"dates"`
	Rates []float64   `json:"rates"`
}

// StandardTenorMonths returns the default target tenor grid used to
// resolve discount curves (1M out to 30Y).
func StandardTenorMonths() []int {
	return []int{1, 3, 6, 12, 24, 36, 60, 120, 180, 240, 360}
}

// DefaultMarketRates returns the static market-rate tenor table used when
// no live rate feed is available.
func DefaultMarketRates() []MarketPoint {
	return []MarketPoint{
		{TenorMonths: 1, Rate: 0.020},
		{TenorMonths: 3, Rate: 0.022},
		{TenorMonths: 6, Rate: 0.025},
		{TenorMonths: 12, Rate: 0.028},
		{TenorMonths: 24, Rate: 0.030},
		{TenorMonths: 36, Rate: 0.032},
		{TenorMonths: 60, Rate: 0.035},
		{TenorMonths: 84, Rate: 0.037},
		{TenorMonths: 120, Rate: 0.040},
		{TenorMonths: 180, Rate: 0.042},
		{TenorMonths: 240, Rate: 0.043},
		{TenorMonths: 360, Rate: 0.044},
	}
}
