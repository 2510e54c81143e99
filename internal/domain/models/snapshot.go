package models

import "time"

// CalculationSnapshot is the archived outcome of one batch recalculation,
// stored in MongoDB so historical figures survive later edits to the source
// lists.
type CalculationSnapshot struct {
	BatchItemID string    `bson:"batch_item_id" json:"batch_item_id"`
	BatchNo     string    `bson:"batch_no" json:"batch_no"`
	WorkDate    time.Time `bson:"work_date" json:"work_date"`

	TotalOutputCT   float64 `bson:"total_output_ct" json:"total_output_ct"`
	TotalManMinutes float64 `bson:"total_man_minutes" json:"total_man_minutes"`
	MinutesPerCT    float64 `bson:"minutes_per_ct" json:"minutes_per_ct"`
	WastageRatePct  float64 `bson:"wastage_rate_pct" json:"wastage_rate_pct"`

	LabourCostPerCT   float64 `bson:"labour_cost_per_ct" json:"labour_cost_per_ct"`
	MaterialCostPerCT float64 `bson:"material_cost_per_ct" json:"material_cost_per_ct"`
	ExtraCostPerCT    float64 `bson:"extra_cost_per_ct" json:"extra_cost_per_ct"`
	TotalCostPerCT    float64 `bson:"total_cost_per_ct" json:"total_cost_per_ct"`
	ProfitPerCT       float64 `bson:"profit_per_ct" json:"profit_per_ct"`
	ProfitTotal       float64 `bson:"profit_total" json:"profit_total"`

	RawKg     float64 `bson:"raw_kg" json:"raw_kg"`
	WastageKg float64 `bson:"wastage_kg" json:"wastage_kg"`

	UnresolvedFields []string  `bson:"unresolved_fields,omitempty" json:"unresolved_fields,omitempty"`
	CalculatedAt     time.Time `bson:"calculated_at" json:"calculated_at"`
}
