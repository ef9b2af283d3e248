package models

// ShockRule selects how a scenario's magnitudes are spread across tenors.
type ShockRule string

const (
	RuleParallel  ShockRule = "parallel"
	RuleTwist     ShockRule = "twist"
	RuleShortOnly ShockRule = "short-only"
)

// ShockScenario is one prescribed instantaneous, permanent curve shock.
type ShockScenario struct {
	Name     string    `json:"name"`
	ShortBps float64   `json:"short_bps"`
	LongBps  float64   `json:"long_bps"`
	Rule     ShockRule `json:"rule"`
}

// RatesRising reports whether the scenario leans toward rising rates.
// Classification follows the sign of the short-end shock: Parallel Up,
// Short-Up and Flattener all shock the short end upward.
func (s ShockScenario) RatesRising() bool {
	return s.ShortBps > 0
}

// RatesFalling reports whether the scenario leans toward falling rates.
func (s ShockScenario) RatesFalling() bool {
	return s.ShortBps < 0
}

// BaselScenarios returns the six prescribed Basel shock scenarios.
func BaselScenarios() []ShockScenario {
	return []ShockScenario{
		{Name: "Parallel Up", ShortBps: 200, LongBps: 200, Rule: RuleParallel},
		{Name: "Parallel Down", ShortBps: -200, LongBps: -200, Rule: RuleParallel},
		{Name: "Steepener", ShortBps: -100, LongBps: 100, Rule: RuleTwist},
		{Name: "Flattener", ShortBps: 100, LongBps: -100, Rule: RuleTwist},
		{Name: "Short-Up", ShortBps: 200, LongBps: 0, Rule: RuleShortOnly},
		{Name: "Short-Down", ShortBps: -200, LongBps: 0, Rule: RuleShortOnly},
	}
}
