package costing

import "math"

// CalculationResult is the derived cost and profit breakdown for one batch.
// All figures are rounded to four decimal places at this boundary; nothing is
// rounded during intermediate computation.
type CalculationResult struct {
	TotalOutputCT   float64 `json:"total_output_ct"`
	TotalManMinutes float64 `json:"total_man_minutes"`
	MinutesPerCT    float64 `json:"minutes_per_ct"`
	WastageRatePct  float64 `json:"wastage_rate_pct"`

	LabourCostPerCT   float64 `json:"labour_cost_per_ct"`
	MaterialCostPerCT float64 `json:"material_cost_per_ct"`
	ExtraCostPerCT    float64 `json:"extra_cost_per_ct"`
	TotalCostPerCT    float64 `json:"total_cost_per_ct"`
	ProfitPerCT       float64 `json:"profit_per_ct"`
	ProfitTotal       float64 `json:"profit_total"`

	// Mass-normalized debug figures for plausibility checks on unit labels.
	RawKg     float64 `json:"raw_kg"`
	WastageKg float64 `json:"wastage_kg"`
}

// Calculate combines a batch's inputs with its aggregated labour total into
// the full per-CT cost and profit breakdown. It is a pure function: every
// call is independent and idempotent given identical inputs.
//
// All per-CT figures are zero when the batch produced no output, and the
// wastage rate is zero when no raw material mass was recorded, so a division
// by zero can never occur.
func Calculate(in BatchInput, totalPersonMinutes float64) CalculationResult {
	totalOutput := in.TotalOutputCT()

	var minutesPerCT, labourCostPerCT, materialCostPerCT float64
	if totalOutput > 0 {
		minutesPerCT = totalPersonMinutes / totalOutput
		labourCostPerCT = minutesPerCT * (in.WagePerHour / 60)
		materialCostPerCT = in.MaterialCost / totalOutput
	}

	rawKg := ToKilograms(in.TotalRawMaterial, in.RawMaterialUnit, in.MaterialUnitWeightKg)
	wastageKg := ToKilograms(in.Wastage, in.WastageUnit, in.MaterialUnitWeightKg)

	var wastageRatePct float64
	if rawKg > 0 {
		wastageRatePct = wastageKg / rawKg * 100
	}

	baseCostPerCT := labourCostPerCT + materialCostPerCT

	var extraCostPerCT float64
	if in.IncludeExtraCost {
		extraCostPerCT = baseCostPerCT * in.ExtraCostPct / 100
	}

	totalCostPerCT := baseCostPerCT + extraCostPerCT
	profitPerCT := in.SellPricePerCT - totalCostPerCT
	profitTotal := profitPerCT * totalOutput

	return CalculationResult{
		TotalOutputCT:   Round4(totalOutput),
		TotalManMinutes: Round4(totalPersonMinutes),
		MinutesPerCT:    Round4(minutesPerCT),
		WastageRatePct:  Round4(wastageRatePct),

		LabourCostPerCT:   Round4(labourCostPerCT),
		MaterialCostPerCT: Round4(materialCostPerCT),
		ExtraCostPerCT:    Round4(extraCostPerCT),
		TotalCostPerCT:    Round4(totalCostPerCT),
		ProfitPerCT:       Round4(profitPerCT),
		ProfitTotal:       Round4(profitTotal),

		RawKg:     Round4(rawKg),
		WastageKg: Round4(wastageKg),
	}
}

// Round4 rounds to four decimal places, the precision stored back into the
// external lists.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round2 rounds to two decimal places, used for per-line labour figures.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
