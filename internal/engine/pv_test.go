package engine

import (
	"testing"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDiscountCashFlows_IdentityAtValuationDate(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.05, valuation)
	flows := []models.CashFlow{
		{PositionID: "a", Date: valuation, Amount: 123_456.78, Side: models.SideAsset},
	}

	res, err := DiscountCashFlows(flows, curve, valuation, ValueParams{})
	require.NoError(t, err)
	require.InDelta(t, 123_456.78, res.PVAssets, 1e-9)
}

func TestDiscountCashFlows_PastFlowsContributeZero(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.05, valuation)
	flows := []models.CashFlow{
		{PositionID: "a", Date: valuation.AddDate(0, 0, -1), Amount: 1_000_000, Side: models.SideAsset},
		{PositionID: "l", Date: valuation.AddDate(-1, 0, 0), Amount: -500_000, Side: models.SideLiability},
	}

	res, err := DiscountCashFlows(flows, curve, valuation, ValueParams{})
	require.NoError(t, err)
	require.Zero(t, res.PVAssets)
	require.Zero(t, res.PVLiabilities)
	require.Zero(t, res.EVE)
}

func TestDiscountCashFlows_CouponEqualsDiscountRate(t *testing.T) {
	// A single fixed-rate asset of 1,000,000 paying one interest+principal
	// flow a year out at 5%, discounted on a flat 5% curve, is worth par:
	// 1,050,000 / 1.05 = 1,000,000.
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.05, valuation)
	oneYear := addMonths(valuation, 12)
	flows := []models.CashFlow{
		{PositionID: "a", Date: oneYear, Amount: 50_000, Kind: models.FlowInterest, Side: models.SideAsset},
		{PositionID: "a", Date: oneYear, Amount: 1_000_000, Kind: models.FlowPrincipal, Side: models.SideAsset},
	}

	res, err := DiscountCashFlows(flows, curve, valuation, ValueParams{})
	require.NoError(t, err)
	// t = days/365.25 is a shade under one year for a 366-day span, so
	// allow a small tolerance around par.
	require.InDelta(t, 1_000_000, res.PVAssets, 100)
	require.InDelta(t, res.PVAssets, res.EVE, 1e-9)
}

func TestDiscountCashFlows_SplitsAssetAndLiabilitySides(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.03, valuation)
	future := valuation.AddDate(2, 0, 0)
	flows := []models.CashFlow{
		{PositionID: "a", Date: future, Amount: 200_000, Side: models.SideAsset},
		{PositionID: "l", Date: future, Amount: -150_000, Side: models.SideLiability},
	}

	res, err := DiscountCashFlows(flows, curve, valuation, ValueParams{})
	require.NoError(t, err)
	require.Positive(t, res.PVAssets)
	require.Negative(t, res.PVLiabilities)
	require.InDelta(t, res.PVAssets+res.PVLiabilities, res.EVE, 1e-9)
}

func TestDiscountCashFlows_CurveDomainError(t *testing.T) {
	valuation := date(2024, time.January, 1)
	short := models.DateCurve{
		Dates: []time.Time{valuation.AddDate(1, 0, 0)},
		Rates: []float64{0.05},
	}
	flows := []models.CashFlow{
		{PositionID: "a", Date: valuation.AddDate(1, 0, 0), Amount: 100, Side: models.SideAsset},
	}

	_, err := DiscountCashFlows(flows, short, valuation, ValueParams{})
	require.ErrorIs(t, err, ErrCurveDomain)
}

func TestDiscountCashFlows_NegativeBaseDiscounting(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, -1.2, valuation) // 1+r <= 0
	flows := []models.CashFlow{
		{PositionID: "a", Date: valuation.AddDate(1, 0, 0), Amount: 100, Side: models.SideAsset},
	}

	_, err := DiscountCashFlows(flows, curve, valuation, ValueParams{})
	require.ErrorIs(t, err, ErrNegativeBaseDiscounting)
}

func TestDiscountCashFlows_NMDBetaDampsShockPassThrough(t *testing.T) {
	valuation := date(2024, time.January, 1)
	baseline := testDateCurve(t, 0.03, valuation)
	shocked := testDateCurve(t, 0.05, valuation)
	flow := []models.CashFlow{
		{PositionID: "nmd-1", Date: valuation.AddDate(3, 0, 0), Amount: -1_000_000, Side: models.SideLiability},
	}
	nmd := map[string]bool{"nmd-1": true}

	// Beta 0: the deposit's discount rate stays at the baseline; the shock
	// does not pass through at all.
	zeroBeta, err := DiscountCashFlows(flow, shocked, valuation, ValueParams{
		Reference: &baseline, NMDBeta: 0, NMDPositions: nmd,
	})
	require.NoError(t, err)
	atBaseline, err := DiscountCashFlows(flow, baseline, valuation, ValueParams{})
	require.NoError(t, err)
	require.InDelta(t, atBaseline.PVLiabilities, zeroBeta.PVLiabilities, 1e-6)

	// Beta 1: full pass-through, identical to discounting on the shocked
	// curve directly.
	fullBeta, err := DiscountCashFlows(flow, shocked, valuation, ValueParams{
		Reference: &baseline, NMDBeta: 1, NMDPositions: nmd,
	})
	require.NoError(t, err)
	atShocked, err := DiscountCashFlows(flow, shocked, valuation, ValueParams{})
	require.NoError(t, err)
	require.InDelta(t, atShocked.PVLiabilities, fullBeta.PVLiabilities, 1e-6)

	// Intermediate beta lands strictly between the two.
	halfBeta, err := DiscountCashFlows(flow, shocked, valuation, ValueParams{
		Reference: &baseline, NMDBeta: 0.5, NMDPositions: nmd,
	})
	require.NoError(t, err)
	require.Greater(t, halfBeta.PVLiabilities, atBaseline.PVLiabilities)
	require.Less(t, halfBeta.PVLiabilities, atShocked.PVLiabilities)
}
