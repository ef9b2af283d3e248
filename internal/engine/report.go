package engine

import (
	"github.com/dkrylov/irrbb-service/internal/models"
)

// BuildDeltaEveReport computes delta EVE per scenario against the baseline
// and expresses it as a percentage of Tier 1 capital. Rows come out in
// scenario input order; scenarios are never reordered or filtered.
// scenarioResults must be aligned index-for-index with scenarios.
func BuildDeltaEveReport(baseline models.EVEResult, scenarios []models.ShockScenario, scenarioResults []models.EVEResult, tier1Capital float64) (models.DeltaEveReport, error) {
	if tier1Capital <= 0 {
		return nil, ErrInvalidCapital
	}

	report := make(models.DeltaEveReport, 0, len(scenarios))
	for i, sc := range scenarios {
		delta := scenarioResults[i].EVE - baseline.EVE
		report = append(report, models.DeltaEveRow{
			Scenario:    sc.Name,
			DeltaEve:    delta,
			PctTier1:    delta / tier1Capital * 100,
			ScenarioEve: scenarioResults[i].EVE,
			BaselineEve: baseline.EVE,
		})
	}
	return report, nil
}
