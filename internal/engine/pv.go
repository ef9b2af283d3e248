package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// ValueParams carries optional discounting inputs.
//
// Reference, when set, is the baseline curve used to damp the discount
// sensitivity of non-maturity deposits: for flows of positions listed in
// NMDPositions the effective rate is ref + beta*(rate-ref), so only the
// beta fraction of a curve shock passes through to the deposit's value.
// With Reference nil the pricing curve is used directly.
type ValueParams struct {
	Reference    *models.DateCurve
	NMDBeta      float64
	NMDPositions map[string]bool
}

// DiscountCashFlows discounts a cash-flow set against a date curve to the
// valuation date, summing asset-side and liability-side present values
// separately. Flows strictly before the valuation date contribute zero;
// flows at the valuation date are taken at face value.
func DiscountCashFlows(flows []models.CashFlow, curve models.DateCurve, valuationDate time.Time, params ValueParams) (models.EVEResult, error) {
	if len(curve.Dates) < 2 {
		return models.EVEResult{}, ErrCurveDomain
	}

	var res models.EVEResult
	for _, cf := range flows {
		days := daysBetween(valuationDate, cf.Date)
		if days < 0 {
			continue
		}

		rate := rateAtDate(curve, valuationDate, cf.Date)
		if params.Reference != nil && params.NMDPositions[cf.PositionID] {
			ref := rateAtDate(*params.Reference, valuationDate, cf.Date)
			rate = ref + params.NMDBeta*(rate-ref)
		}

		pv := cf.Amount
		if days > 0 {
			if 1+rate <= 0 {
				return models.EVEResult{}, fmt.Errorf("rate %.6f at %s: %w",
					rate, cf.Date.Format("2006-01-02"), ErrNegativeBaseDiscounting)
			}
			t := days / daysPerYear
			pv = cf.Amount / math.Pow(1+rate, t)
		}

		if cf.Side == models.SideAsset {
			res.PVAssets += pv
		} else {
			res.PVLiabilities += pv
		}
	}
	res.EVE = res.PVAssets + res.PVLiabilities
	return res, nil
}
