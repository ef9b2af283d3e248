package engine

import (
	"math"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// ApplyBehavioral returns a new cash-flow set with the position's
// behavioral overlay applied. The input set is never mutated, and the
// transformation is deterministic for identical inputs.
//
// Prepayment scales each future principal flow by a monthly-compounded
// survival factor derived from the annual prepayment rate. The reduced
// principal is not redistributed to earlier dates; this understates the
// time-shift of real prepayment and is kept as specified behavior.
//
// Non-maturity treatment drops the valuation-date placeholder and
// re-emits a single principal flow at valuationDate + behavioral maturity.
// The NMD beta is not applied here; the present-value engine applies it as
// discount-sensitivity damping.
func ApplyBehavioral(flows []models.CashFlow, pos models.Position, params models.BehavioralParams, valuationDate time.Time) []models.CashFlow {
	switch pos.Behavior {
	case models.BehaviorPrepayment:
		return applyPrepayment(flows, params.PrepaymentRateAnnual, valuationDate)
	case models.BehaviorNonMaturity:
		return applyNonMaturity(pos, params.NMDMaturityYears, valuationDate)
	default:
		out := make([]models.CashFlow, len(flows))
		copy(out, flows)
		return out
	}
}

func applyPrepayment(flows []models.CashFlow, annualRate float64, valuationDate time.Time) []models.CashFlow {
	out := make([]models.CashFlow, len(flows))
	copy(out, flows)
	if annualRate <= 0 {
		return out
	}
	if annualRate > 1 {
		annualRate = 1
	}
	monthlyRate := 1 - math.Pow(1-annualRate, 1.0/12.0)
	for i, cf := range out {
		if cf.Kind != models.FlowPrincipal || !cf.Date.After(valuationDate) {
			continue
		}
		months := daysBetween(valuationDate, cf.Date) / daysPerMonth
		out[i].Amount = cf.Amount * math.Pow(1-monthlyRate, months)
	}
	return out
}

func applyNonMaturity(pos models.Position, maturityYears float64, valuationDate time.Time) []models.CashFlow {
	sign := 1.0
	if pos.Side == models.SideLiability {
		sign = -1.0
	}
	behavioralMaturity := addMonths(valuationDate, int(math.Round(maturityYears*12)))
	return []models.CashFlow{{
		PositionID: pos.ID,
		Date:       behavioralMaturity,
		Amount:     sign * pos.Notional,
		Kind:       models.FlowPrincipal,
		Side:       pos.Side,
	}}
}
