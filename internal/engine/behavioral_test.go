package engine

import (
	"math"
	"testing"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/stretchr/testify/require"
)

func TestApplyBehavioral_NoneIsNoOpCopy(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.04, valuation)
	pos := fixedAsset("loan-1", 500_000, 0.04, valuation, 24, 12)

	flows, err := ProjectCashFlows(pos, curve, valuation)
	require.NoError(t, err)

	out := ApplyBehavioral(flows, pos, models.BehavioralParams{PrepaymentRateAnnual: 0.5}, valuation)
	require.Equal(t, flows, out)

	// The overlay must return a fresh collection, never alias its input.
	out[0].Amount = 0
	require.NotEqual(t, flows[0].Amount, out[0].Amount)
}

func TestApplyBehavioral_NotionalConservedWithoutOverlay(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.04, valuation)
	pos := fixedAsset("loan-2", 800_000, 0.04, valuation, 36, 6)

	flows, err := ProjectCashFlows(pos, curve, valuation)
	require.NoError(t, err)
	out := ApplyBehavioral(flows, pos, models.BehavioralParams{}, valuation)

	var inPrincipal, outPrincipal float64
	for _, cf := range flows {
		if cf.Kind == models.FlowPrincipal {
			inPrincipal += cf.Amount
		}
	}
	for _, cf := range out {
		if cf.Kind == models.FlowPrincipal {
			outPrincipal += cf.Amount
		}
	}
	require.InDelta(t, inPrincipal, outPrincipal, 1e-9)
}

func TestApplyBehavioral_PrepaymentScalesFuturePrincipal(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.04, valuation)
	pos := fixedAsset("mtg-1", 1_000_000, 0.04, valuation, 120, 12)
	pos.Behavior = models.BehaviorPrepayment

	flows, err := ProjectCashFlows(pos, curve, valuation)
	require.NoError(t, err)
	params := models.BehavioralParams{PrepaymentRateAnnual: 0.10}
	out := ApplyBehavioral(flows, pos, params, valuation)

	principal := out[len(out)-1]
	require.Equal(t, models.FlowPrincipal, principal.Kind)
	require.Less(t, principal.Amount, 1_000_000.0)

	// Monthly-compounded survival over ten years: (1-annual)^(months/12).
	months := daysBetween(valuation, principal.Date) / daysPerMonth
	expected := 1_000_000 * math.Pow(0.90, months/12)
	require.InDelta(t, expected, principal.Amount, 1)

	// Interest flows are untouched.
	for i, cf := range out[:len(out)-1] {
		require.InDelta(t, flows[i].Amount, cf.Amount, 1e-9)
	}
}

func TestApplyBehavioral_PrepaymentIdempotentForSameInputs(t *testing.T) {
	valuation := date(2024, time.January, 1)
	curve := testDateCurve(t, 0.04, valuation)
	pos := fixedAsset("mtg-2", 400_000, 0.05, valuation, 60, 12)
	pos.Behavior = models.BehaviorPrepayment

	flows, err := ProjectCashFlows(pos, curve, valuation)
	require.NoError(t, err)
	params := models.BehavioralParams{PrepaymentRateAnnual: 0.07}

	first := ApplyBehavioral(flows, pos, params, valuation)
	second := ApplyBehavioral(flows, pos, params, valuation)
	require.Equal(t, first, second)
}

func TestApplyBehavioral_NMDReplacesPlaceholder(t *testing.T) {
	valuation := date(2024, time.January, 1)
	pos := models.Position{
		ID:       "nmd-1",
		Side:     models.SideLiability,
		Notional: 1_000_000,
		RateType: models.RateFixed,
		Behavior: models.BehaviorNonMaturity,
	}
	placeholder := []models.CashFlow{{
		PositionID: pos.ID,
		Date:       valuation,
		Amount:     -1_000_000,
		Kind:       models.FlowPrincipal,
		Side:       models.SideLiability,
	}}

	params := models.BehavioralParams{NMDBeta: 0.4, NMDMaturityYears: 3}
	out := ApplyBehavioral(placeholder, pos, params, valuation)

	// Exactly one flow, three years out, full signed notional. The beta
	// never scales the amount.
	require.Len(t, out, 1)
	require.Equal(t, date(2027, time.January, 1), out[0].Date)
	require.InDelta(t, -1_000_000, out[0].Amount, 1e-9)
	require.Equal(t, models.FlowPrincipal, out[0].Kind)
}
