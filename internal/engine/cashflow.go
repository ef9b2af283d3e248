package engine

import (
	"fmt"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// ProjectCashFlows produces the contractual payment schedule for one
// position against the supplied rate curve.
//
// Maturing positions emit one interest flow per payment interval from the
// issue date and a principal flow equal to the notional at maturity.
// Floating positions use the contractual rate for periods before the next
// repricing date and the curve-resolved rate (plus spread) at or after it.
// Non-maturity instruments emit a single placeholder principal flow at the
// valuation date, to be replaced by the behavioral overlay. Instruments
// with no interest sensitivity yield an empty set, not an error.
func ProjectCashFlows(pos models.Position, curve models.DateCurve, valuationDate time.Time) ([]models.CashFlow, error) {
	sign := 1.0
	if pos.Side == models.SideLiability {
		sign = -1.0
	}

	if pos.MaturityDate == nil {
		if pos.Behavior != models.BehaviorNonMaturity {
			return nil, nil
		}
		return []models.CashFlow{{
			PositionID: pos.ID,
			Date:       valuationDate,
			Amount:     sign * pos.Notional,
			Kind:       models.FlowPrincipal,
			Side:       pos.Side,
		}}, nil
	}

	maturity := *pos.MaturityDate
	freq := pos.PaymentFreqMonths
	span := wholeMonthsBetween(pos.IssueDate, maturity)
	if freq <= 0 || span <= 0 || span%freq != 0 || !sameDay(addMonths(pos.IssueDate, span), maturity) {
		return nil, fmt.Errorf("position %s: %w", pos.ID, ErrInvalidSchedule)
	}

	accrual := float64(freq) / 12.0
	flows := make([]models.CashFlow, 0, span/freq+1)
	for k := freq; k <= span; k += freq {
		payDate := addMonths(pos.IssueDate, k)
		rate := periodRate(pos, curve, valuationDate, payDate)
		flows = append(flows, models.CashFlow{
			PositionID: pos.ID,
			Date:       payDate,
			Amount:     sign * pos.Notional * accrual * rate,
			Kind:       models.FlowInterest,
			Side:       pos.Side,
		})
	}
	flows = append(flows, models.CashFlow{
		PositionID: pos.ID,
		Date:       maturity,
		Amount:     sign * pos.Notional,
		Kind:       models.FlowPrincipal,
		Side:       pos.Side,
	})
	return flows, nil
}

// periodRate resolves the annual rate applied to the accrual period ending
// at payDate.
func periodRate(pos models.Position, curve models.DateCurve, valuationDate, payDate time.Time) float64 {
	if pos.RateType != models.RateFloating {
		return pos.CurrentRate
	}
	spread := float64(pos.SpreadBps) / 10000.0
	if pos.NextRepricingDate != nil && !payDate.Before(*pos.NextRepricingDate) {
		return rateAtDate(curve, valuationDate, payDate) + spread
	}
	return pos.CurrentRate + spread
}
