package models

import "time"

// EVEResult is the outcome of one full-book revaluation: present value of
// assets, present value of liabilities (negative under the signed cash-flow
// convention), and their sum.
type EVEResult struct {
	PVAssets      float64 `json:"pv_assets"`
	PVLiabilities float64 `json:"pv_liabilities"`
	EVE           float64 `json:"eve"`
}

// GapRow is one bucket row of the gap table.
type GapRow struct {
	Bucket  string  `json:"bucket"`
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	NetGap  float64 `json:"net_gap"`
}

// GapTable holds one row per bucket, in bucket order.
type GapTable []GapRow

// DeltaEveRow is one scenario row of the delta-EVE report.
type DeltaEveRow struct {
	Scenario    string  `json:"scenario"`
	DeltaEve    float64 `json:"delta_eve"`
	PctTier1    float64 `json:"pct_tier1"`
	ScenarioEve float64 `json:"scenario_eve"`
	BaselineEve float64 `json:"baseline_eve"`
}

// DeltaEveReport holds one row per scenario, in scenario input order.
type DeltaEveReport []DeltaEveRow

// BehavioralParams carries the behavioral overlay inputs.
type BehavioralParams struct {
	PrepaymentRateAnnual  float64 `json:"prepayment_rate_annual"`
	NMDBeta               float64 `json:"nmd_beta"`
	NMDMaturityYears      float64 `json:"nmd_maturity_years"`
	ShockAdjustmentFactor float64 `json:"shock_adjustment_factor"`
}

// ValuationRun is a persisted record of one engine run.
type ValuationRun struct {
	ID            int64     `json:"id"`
	ValuationDate time.Time `json:"valuation_date"`
	PVAssets      float64   `json:"pv_assets"`
	PVLiabilities float64   `json:"pv_liabilities"`
	BaselineEve   float64   `json:"baseline_eve"`
	Tier1Capital  float64   `json:"tier1_capital"`
	CreatedAt     time.Time `json:"created_at"`
}
