package export

import (
	"fmt"
	"strings"

	"github.com/dkrylov/irrbb-service/internal/engine"
	"github.com/dkrylov/irrbb-service/internal/models"
)

const dateLayout = "2006-01-02"

// RenderCurveCSV renders a date curve as CSV.
func RenderCurveCSV(curve models.DateCurve) string {
	var sb strings.Builder
	sb.WriteString("date,rate\n")
	for i, d := range curve.Dates {
		sb.WriteString(fmt.Sprintf("%s,%.6f\n", d.Format(dateLayout), curve.Rates[i]))
	}
	return sb.String()
}

// RenderCashFlowsCSV renders a cash-flow set as CSV. A limit > 0 truncates
// the output to the first limit rows for preview.
func RenderCashFlowsCSV(flows []models.CashFlow, limit int) string {
	var sb strings.Builder
	sb.WriteString("position_id,date,amount,kind,side\n")
	for i, cf := range flows {
		if limit > 0 && i >= limit {
			break
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%.2f,%s,%s\n",
			cf.PositionID, cf.Date.Format(dateLayout), cf.Amount, cf.Kind, cf.Side))
	}
	return sb.String()
}

// RenderGapTableCSV renders the gap table as CSV in bucket order.
func RenderGapTableCSV(table models.GapTable) string {
	var sb strings.Builder
	sb.WriteString("bucket,inflow,outflow,net_gap\n")
	for _, row := range table {
		sb.WriteString(fmt.Sprintf("%s,%.2f,%.2f,%.2f\n", row.Bucket, row.Inflow, row.Outflow, row.NetGap))
	}
	return sb.String()
}

// RenderReportCSV renders the delta-EVE report as CSV in scenario order.
func RenderReportCSV(report models.DeltaEveReport) string {
	var sb strings.Builder
	sb.WriteString("scenario,baseline_eve,scenario_eve,delta_eve,pct_tier1\n")
	for _, row := range report {
		sb.WriteString(fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.4f\n",
			row.Scenario, row.BaselineEve, row.ScenarioEve, row.DeltaEve, row.PctTier1))
	}
	return sb.String()
}

// RenderExcludedCSV renders the excluded-position list of a run as CSV.
func RenderExcludedCSV(excluded []engine.PositionError) string {
	var sb strings.Builder
	sb.WriteString("position_id,reason\n")
	for _, pe := range excluded {
		sb.WriteString(fmt.Sprintf("%s,%s\n", pe.PositionID, strings.ReplaceAll(pe.Reason, ",", ";")))
	}
	return sb.String()
}
