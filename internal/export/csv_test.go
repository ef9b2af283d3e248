package export

import (
	"strings"
	"testing"
	"time"

	"github.com/dkrylov/irrbb-service/internal/engine"
	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRenderReportCSV(t *testing.T) {
	report := models.DeltaEveReport{
		{Scenario: "Parallel Up", BaselineEve: 100, ScenarioEve: 70, DeltaEve: -30, PctTier1: -3},
		{Scenario: "Parallel Down", BaselineEve: 100, ScenarioEve: 115, DeltaEve: 15, PctTier1: 1.5},
	}

	out := RenderReportCSV(report)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "scenario,baseline_eve,scenario_eve,delta_eve,pct_tier1", lines[0])
	require.Equal(t, "Parallel Up,100.00,70.00,-30.00,-3.0000", lines[1])
	require.Equal(t, "Parallel Down,100.00,115.00,15.00,1.5000", lines[2])
}

func TestRenderCashFlowsCSV_Limit(t *testing.T) {
	d := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	flows := []models.CashFlow{
		{PositionID: "a", Date: d, Amount: 10, Kind: models.FlowInterest, Side: models.SideAsset},
		{PositionID: "b", Date: d, Amount: 20, Kind: models.FlowPrincipal, Side: models.SideAsset},
		{PositionID: "c", Date: d, Amount: -30, Kind: models.FlowPrincipal, Side: models.SideLiability},
	}

	full := RenderCashFlowsCSV(flows, 0)
	require.Len(t, strings.Split(strings.TrimSpace(full), "\n"), 4)

	truncated := RenderCashFlowsCSV(flows, 2)
	lines := strings.Split(strings.TrimSpace(truncated), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "a,2024-03-01,10.00")
	require.NotContains(t, truncated, "c,")
}

func TestRenderExcludedCSV_EscapesCommas(t *testing.T) {
	excluded := []engine.PositionError{
		{PositionID: "p1", Reason: "irregular schedule, span 7 months"},
	}

	out := RenderExcludedCSV(excluded)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "p1,irregular schedule; span 7 months", lines[1])
}
