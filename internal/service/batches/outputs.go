package batches

import (
	"time"

	"github.com/mamadbah2/batchcost/internal/costing"
)

// batchOutputFields maps every logical batch output to its value and the
// ordered candidate column names it may be stored under. The first two names
// per output cover the column's original internal name and the display label
// it usually ends up with when re-created through the SharePoint UI.
func batchOutputFields(res costing.CalculationResult, calculatedAt time.Time) map[string]costing.DesiredField {
	return map[string]costing.DesiredField{
		"TotalOutputCT": {
			Value:      res.TotalOutputCT,
			Candidates: []string{"TotalOutputCT", "Total Output CT"},
		},
		"TotalManMinutes": {
			Value:      res.TotalManMinutes,
			Candidates: []string{"TotalManMinutes", "Total Man Minutes"},
		},
		"MinutesPerCT": {
			Value:      res.MinutesPerCT,
			Candidates: []string{"MinutesPerCT", "Minutes Per CT"},
		},
		"WastageRatePct": {
			Value:      res.WastageRatePct,
			Candidates: []string{"WastageRatePct", "WastageRate(%)", "Wastage Rate (%)"},
		},
		"LabourCostPerCT": {
			Value:      res.LabourCostPerCT,
			Candidates: []string{"LabourCostPerCT", "Labour Cost Per CT"},
		},
		"MaterialCostPerCT": {
			Value:      res.MaterialCostPerCT,
			Candidates: []string{"MaterialCostPerCT", "Material Cost Per CT"},
		},
		"ExtraCostPerCT": {
			Value:      res.ExtraCostPerCT,
			Candidates: []string{"ExtraCostPerCT", "Extra Cost Per CT"},
		},
		"TotalCostPerCT": {
			Value:      res.TotalCostPerCT,
			Candidates: []string{"TotalCostPerCT", "Total Cost Per CT"},
		},
		"ProfitPerCT": {
			Value:      res.ProfitPerCT,
			Candidates: []string{"ProfitPerCT", "Profit Per CT"},
		},
		"ProfitTotal": {
			Value:      res.ProfitTotal,
			Candidates: []string{"ProfitTotal", "Profit Total"},
		},
		"RawKg": {
			Value:      res.RawKg,
			Candidates: []string{"RawKg", "Raw Kg"},
		},
		"WastageKg": {
			Value:      res.WastageKg,
			Candidates: []string{"WastageKg", "Wastage Kg"},
		},
		"CalculatedAt": {
			Value:      calculatedAt.UTC().Format(time.RFC3339),
			Candidates: []string{"CalculatedAt", "Calculated At"},
		},
	}
}

// labourOutputFields maps one labour line's derived figures to candidate
// column names on the labour list.
func labourOutputFields(row costing.LabourLineResult) map[string]costing.DesiredField {
	return map[string]costing.DesiredField{
		"DurationMinutes": {
			Value:      row.DurationMinutes,
			Candidates: []string{"DurationMinutes", "Duration Minutes"},
		},
		"ManMinutes": {
			Value:      row.PersonMinutes,
			Candidates: []string{"ManMinutes", "Man Minutes"},
		},
	}
}
