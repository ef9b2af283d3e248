package engine

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log)
}

func testRunInput() RunInput {
	valuation := date(2024, time.January, 1)
	return RunInput{
		ValuationDate:      valuation,
		MarketPoints:       models.DefaultMarketRates(),
		LiquiditySpreadBps: 10,
		Tier1Capital:       5_000_000,
		Behavioral: models.BehavioralParams{
			PrepaymentRateAnnual:  0.05,
			NMDBeta:               0.4,
			NMDMaturityYears:      3,
			ShockAdjustmentFactor: 0.1,
		},
		Positions: []models.Position{
			fixedAsset("loan-1", 2_000_000, 0.045, date(2021, time.January, 1), 120, 12),
			fixedAsset("bond-1", 1_500_000, 0.035, date(2023, time.July, 1), 60, 6),
			{
				ID:       "nmd-1",
				Side:     models.SideLiability,
				Notional: 1_200_000,
				RateType: models.RateFixed,
				Behavior: models.BehaviorNonMaturity,
			},
			{
				ID:                "dep-1",
				Side:              models.SideLiability,
				Notional:          800_000,
				RateType:          models.RateFixed,
				CurrentRate:       0.02,
				PaymentFreqMonths: 12,
				IssueDate:         date(2023, time.January, 1),
				MaturityDate:      timePtr(date(2027, time.January, 1)),
				Behavior:          models.BehaviorNone,
			},
		},
	}
}

func TestEngineRun_FullPipeline(t *testing.T) {
	e := testEngine()
	res, err := e.Run(context.Background(), testRunInput())
	require.NoError(t, err)

	require.Len(t, res.TenorCurve.Tenors, len(models.StandardTenorMonths()))
	require.Len(t, res.ScenarioEVEs, 6)
	require.Len(t, res.Report, 6)
	require.Len(t, res.GapTable, 9)
	require.Empty(t, res.Excluded)

	require.Positive(t, res.Baseline.PVAssets)
	require.Negative(t, res.Baseline.PVLiabilities)
	require.InDelta(t, res.Baseline.PVAssets+res.Baseline.PVLiabilities, res.Baseline.EVE, 1e-9)

	// Report rows follow the fixed scenario order.
	names := []string{"Parallel Up", "Parallel Down", "Steepener", "Flattener", "Short-Up", "Short-Down"}
	for i, row := range res.Report {
		require.Equal(t, names[i], row.Scenario)
		require.InDelta(t, row.DeltaEve/5_000_000*100, row.PctTier1, 1e-9)
	}

	// Rates up shrinks asset-heavy EVE: Parallel Up must value below the
	// baseline for this book.
	require.Less(t, res.ScenarioEVEs[0].EVE, res.Baseline.EVE)
}

func TestEngineRun_Deterministic(t *testing.T) {
	e := testEngine()
	first, err := e.Run(context.Background(), testRunInput())
	require.NoError(t, err)
	second, err := e.Run(context.Background(), testRunInput())
	require.NoError(t, err)

	require.Equal(t, first.Report, second.Report)
	require.Equal(t, first.Baseline, second.Baseline)
	require.Equal(t, first.GapTable, second.GapTable)
}

func TestEngineRun_IsolatesMalformedPosition(t *testing.T) {
	in := testRunInput()
	// 13-month span with a quarterly frequency cannot form a regular
	// schedule; the position must be excluded, not abort the run.
	in.Positions = append(in.Positions, fixedAsset("bad-1", 100_000, 0.03, in.ValuationDate, 13, 3))

	e := testEngine()
	res, err := e.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, res.Excluded, 1)
	require.Equal(t, "bad-1", res.Excluded[0].PositionID)
	require.ErrorIs(t, res.Excluded[0].Err, ErrInvalidSchedule)

	// The remaining book still values identically to a run without the
	// malformed position.
	clean, err := e.Run(context.Background(), testRunInput())
	require.NoError(t, err)
	require.Equal(t, clean.Baseline, res.Baseline)
	require.Equal(t, clean.Report, res.Report)
}

func TestEngineRun_InsufficientMarketData(t *testing.T) {
	in := testRunInput()
	in.MarketPoints = in.MarketPoints[:1]

	_, err := testEngine().Run(context.Background(), in)
	require.ErrorIs(t, err, ErrInsufficientCurveData)
}

func TestEngineRun_InvalidCapital(t *testing.T) {
	in := testRunInput()
	in.Tier1Capital = 0

	_, err := testEngine().Run(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidCapital)
}
