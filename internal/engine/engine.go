package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine drives the full IRRBB revaluation pipeline: curve construction,
// cash-flow projection, behavioral overlay, gap analysis, baseline EVE,
// and the six-scenario shocked revaluations.
type Engine struct {
	log *logrus.Logger
}

// New initializes an engine.
func New(log *logrus.Logger) *Engine {
	return &Engine{log: log}
}

// RunInput carries every input of one engine run. Defaults are applied for
// TargetTenors, Scenarios and Buckets when left empty; all inputs are
// treated as immutable for the duration of the run.
type RunInput struct {
	ValuationDate      time.Time
	Positions          []models.Position
	MarketPoints       []models.MarketPoint
	TargetTenors       []int
	LiquiditySpreadBps float64
	Behavioral         models.BehavioralParams
	Scenarios          []models.ShockScenario
	Buckets            []models.BucketDefinition
	Tier1Capital       float64
}

// PositionError records a position excluded from aggregation.
type PositionError struct {
	PositionID string `json:"position_id"`
	Err        error  `json:"-"`
	Reason     string `json:"reason"`
}

// RunResult is the full output of one engine run.
type RunResult struct {
	ValuationDate time.Time             `json:"valuation_date"`
	TenorCurve    models.TenorCurve     `json:"tenor_curve"`
	DateCurve     models.DateCurve      `json:"date_curve"`
	CashFlows     []models.CashFlow     `json:"cash_flows"`
	GapTable      models.GapTable       `json:"gap_table"`
	Baseline      models.EVEResult      `json:"baseline"`
	ScenarioEVEs  []models.EVEResult    `json:"scenario_eves"`
	Report        models.DeltaEveReport `json:"report"`
	Excluded      []PositionError       `json:"excluded,omitempty"`
}

// Run executes the pipeline: baseline valuation first, then the shock
// scenarios fanned out across goroutines. Scenario computations are
// mutually independent; each re-projects its own cash flows from the
// immutable position set. Per-position schedule failures are isolated and
// reported on the result instead of aborting the run.
func (e *Engine) Run(ctx context.Context, in RunInput) (*RunResult, error) {
	if len(in.TargetTenors) == 0 {
		in.TargetTenors = models.StandardTenorMonths()
	}
	if len(in.Scenarios) == 0 {
		in.Scenarios = models.BaselScenarios()
	}
	if len(in.Buckets) == 0 {
		in.Buckets = models.DefaultBaselBuckets()
	}

	tenorCurve, err := BuildTenorCurve(in.MarketPoints, in.TargetTenors, in.LiquiditySpreadBps)
	if err != nil {
		return nil, fmt.Errorf("failed to build baseline curve: %w", err)
	}
	dateCurve := ToDateCurve(tenorCurve, in.ValuationDate)

	var (
		flows    []models.CashFlow
		excluded []PositionError
	)
	nmd := make(map[string]bool)
	for _, pos := range in.Positions {
		cfs, projErr := ProjectCashFlows(pos, dateCurve, in.ValuationDate)
		if projErr != nil {
			e.log.WithField("position_id", pos.ID).Warnf("Excluding position: %v", projErr)
			excluded = append(excluded, PositionError{PositionID: pos.ID, Err: projErr, Reason: projErr.Error()})
			continue
		}
		flows = append(flows, ApplyBehavioral(cfs, pos, in.Behavioral, in.ValuationDate)...)
		if pos.Behavior == models.BehaviorNonMaturity {
			nmd[pos.ID] = true
		}
	}

	gapTable := BuildGapTable(flows, in.ValuationDate, in.Buckets)

	baseline, err := DiscountCashFlows(flows, dateCurve, in.ValuationDate, ValueParams{
		NMDBeta:      in.Behavioral.NMDBeta,
		NMDPositions: nmd,
	})
	if err != nil {
		return nil, fmt.Errorf("baseline valuation failed: %w", err)
	}

	scenarioEVEs := make([]models.EVEResult, len(in.Scenarios))
	g, _ := errgroup.WithContext(ctx)
	for i, sc := range in.Scenarios {
		i, sc := i, sc
		g.Go(func() error {
			result, scenarioExcluded, scErr := RunScenario(in.Positions, tenorCurve, dateCurve, sc, in.ValuationDate, in.Behavioral)
			if scErr != nil {
				return fmt.Errorf("scenario %s failed: %w", sc.Name, scErr)
			}
			for _, pe := range scenarioExcluded {
				e.log.WithFields(logrus.Fields{
					"scenario":    sc.Name,
					"position_id": pe.PositionID,
				}).Warnf("Position excluded from scenario: %v", pe.Err)
			}
			scenarioEVEs[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := BuildDeltaEveReport(baseline, in.Scenarios, scenarioEVEs, in.Tier1Capital)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"positions": len(in.Positions),
		"excluded":  len(excluded),
		"scenarios": len(in.Scenarios),
	}).Infof("Valuation run complete: baseline EVE %.2f", baseline.EVE)

	return &RunResult{
		ValuationDate: in.ValuationDate,
		TenorCurve:    tenorCurve,
		DateCurve:     dateCurve,
		CashFlows:     flows,
		GapTable:      gapTable,
		Baseline:      baseline,
		ScenarioEVEs:  scenarioEVEs,
		Report:        report,
		Excluded:      excluded,
	}, nil
}
