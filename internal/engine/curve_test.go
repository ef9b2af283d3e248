package engine

import (
	"testing"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flatMarket(rate float64) []models.MarketPoint {
	return []models.MarketPoint{
		{TenorMonths: 1, Rate: rate},
		{TenorMonths: 12, Rate: rate},
		{TenorMonths: 360, Rate: rate},
	}
}

func TestBuildTenorCurve_InsufficientData(t *testing.T) {
	_, err := BuildTenorCurve([]models.MarketPoint{{TenorMonths: 12, Rate: 0.03}}, []int{1, 12}, 0)
	require.ErrorIs(t, err, ErrInsufficientCurveData)

	_, err = BuildTenorCurve(nil, []int{12}, 0)
	require.ErrorIs(t, err, ErrInsufficientCurveData)
}

func TestBuildTenorCurve_InterpolatesAndAddsSpread(t *testing.T) {
	points := []models.MarketPoint{
		{TenorMonths: 12, Rate: 0.02},
		{TenorMonths: 36, Rate: 0.04},
	}
	curve, err := BuildTenorCurve(points, []int{12, 24, 36}, 50)
	require.NoError(t, err)

	require.Equal(t, []int{12, 24, 36}, curve.Tenors)
	require.InDelta(t, 0.025, curve.Rates[0], 1e-12) // 0.02 + 50bps
	require.InDelta(t, 0.035, curve.Rates[1], 1e-12) // midpoint + spread
	require.InDelta(t, 0.045, curve.Rates[2], 1e-12)
}

func TestBuildTenorCurve_ExtrapolatesOutsideObservedRange(t *testing.T) {
	points := []models.MarketPoint{
		{TenorMonths: 12, Rate: 0.02},
		{TenorMonths: 24, Rate: 0.03},
	}

	// A single requested tenor below or above the market range must not
	// fail; the boundary segment is extended linearly.
	curve, err := BuildTenorCurve(points, []int{6}, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.015, curve.Rates[0], 1e-12)

	curve, err = BuildTenorCurve(points, []int{36}, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.04, curve.Rates[0], 1e-12)
}

func TestBuildTenorCurve_SortsUnorderedPoints(t *testing.T) {
	points := []models.MarketPoint{
		{TenorMonths: 36, Rate: 0.04},
		{TenorMonths: 12, Rate: 0.02},
	}
	curve, err := BuildTenorCurve(points, []int{24}, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.03, curve.Rates[0], 1e-12)
}

func TestToDateCurve_MapsTenorsToCalendarDates(t *testing.T) {
	valuation := date(2024, time.January, 15)
	curve := models.TenorCurve{Tenors: []int{1, 12}, Rates: []float64{0.02, 0.03}}

	dc := ToDateCurve(curve, valuation)
	require.Len(t, dc.Dates, 2)
	require.Equal(t, date(2024, time.February, 15), dc.Dates[0])
	require.Equal(t, date(2025, time.January, 15), dc.Dates[1])
	require.Equal(t, curve.Rates, dc.Rates)
}

func TestRateAtTenor_FlatCurveIsFlatEverywhere(t *testing.T) {
	curve, err := BuildTenorCurve(flatMarket(0.05), models.StandardTenorMonths(), 0)
	require.NoError(t, err)
	for _, tenor := range []float64{0.5, 1, 7, 100, 500} {
		require.InDelta(t, 0.05, RateAtTenor(curve, tenor), 1e-12)
	}
}

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	require.Equal(t, date(2023, time.February, 28), addMonths(date(2023, time.January, 31), 1))
	require.Equal(t, date(2024, time.February, 29), addMonths(date(2024, time.January, 31), 1))
	require.Equal(t, date(2024, time.April, 15), addMonths(date(2024, time.January, 15), 3))
}
