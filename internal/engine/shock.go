package engine

import (
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// ApplyShock derives a new tenor curve from the baseline under one
// scenario. The parallel rule adds the same shock to every tenor; the
// twist and short-only rules interpolate the shock linearly between the
// curve's first tenor (short anchor, shock = short bps) and its last tenor
// (long anchor, shock = long bps). Negative shocked rates are accepted.
func ApplyShock(base models.TenorCurve, scenario models.ShockScenario) models.TenorCurve {
	shocked := models.TenorCurve{
		Tenors: make([]int, len(base.Tenors)),
		Rates:  make([]float64, len(base.Tenors)),
	}
	copy(shocked.Tenors, base.Tenors)

	short := scenario.ShortBps / 10000.0
	long := scenario.LongBps / 10000.0

	if scenario.Rule == models.RuleParallel || len(base.Tenors) < 2 {
		for i, r := range base.Rates {
			shocked.Rates[i] = r + short
		}
		return shocked
	}

	shortAnchor := float64(base.Tenors[0])
	longAnchor := float64(base.Tenors[len(base.Tenors)-1])
	for i, r := range base.Rates {
		tenor := float64(base.Tenors[i])
		shock := short
		switch {
		case tenor <= shortAnchor:
			shock = short
		case tenor >= longAnchor:
			shock = long
		default:
			shock = short + (long-short)*(tenor-shortAnchor)/(longAnchor-shortAnchor)
		}
		shocked.Rates[i] = r + shock
	}
	return shocked
}

// AdjustBehavioralForShock re-parameterizes the behavioral overlay for a
// scenario. Rate-rising scenarios reduce the prepayment rate and push the
// NMD beta toward 1; rate-falling scenarios increase prepayment and pull
// the beta toward 0. Both stay clamped to [0, 1].
func AdjustBehavioralForShock(base models.BehavioralParams, scenario models.ShockScenario) models.BehavioralParams {
	adj := base.ShockAdjustmentFactor
	p := base
	switch {
	case scenario.RatesRising():
		p.PrepaymentRateAnnual = base.PrepaymentRateAnnual * (1 - adj)
		p.NMDBeta = base.NMDBeta + adj*(1-base.NMDBeta)
	case scenario.RatesFalling():
		p.PrepaymentRateAnnual = base.PrepaymentRateAnnual * (1 + adj)
		p.NMDBeta = base.NMDBeta * (1 - adj)
	}
	p.PrepaymentRateAnnual = clamp01(p.PrepaymentRateAnnual)
	p.NMDBeta = clamp01(p.NMDBeta)
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RunScenario revalues the full position set under one shock scenario:
// the shocked curve is derived, behavioral parameters are adjusted, and
// cash flows are re-projected from scratch so scenarios share no mutable
// state. Positions whose schedules cannot be generated are excluded and
// reported; aggregation continues over the remainder.
func RunScenario(positions []models.Position, baseTenor models.TenorCurve, baseDate models.DateCurve, scenario models.ShockScenario, valuationDate time.Time, params models.BehavioralParams) (models.EVEResult, []PositionError, error) {
	shockedTenor := ApplyShock(baseTenor, scenario)
	shockedDate := ToDateCurve(shockedTenor, valuationDate)
	adjusted := AdjustBehavioralForShock(params, scenario)

	var (
		flows    []models.CashFlow
		excluded []PositionError
	)
	nmd := make(map[string]bool)
	for _, pos := range positions {
		cfs, err := ProjectCashFlows(pos, shockedDate, valuationDate)
		if err != nil {
			excluded = append(excluded, PositionError{PositionID: pos.ID, Err: err})
			continue
		}
		flows = append(flows, ApplyBehavioral(cfs, pos, adjusted, valuationDate)...)
		if pos.Behavior == models.BehaviorNonMaturity {
			nmd[pos.ID] = true
		}
	}

	result, err := DiscountCashFlows(flows, shockedDate, valuationDate, ValueParams{
		Reference:    &baseDate,
		NMDBeta:      adjusted.NMDBeta,
		NMDPositions: nmd,
	})
	if err != nil {
		return models.EVEResult{}, excluded, err
	}
	return result, excluded, nil
}
