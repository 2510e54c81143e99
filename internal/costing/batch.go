package costing

import (
	"strings"
	"time"
)

// Candidate column names per logical batch input. The external lists have
// grown a few spelling variants over time, so each input is looked up under
// every name it has ever carried, first match wins.
var (
	BatchNoColumns  = []string{"BatchNo", "Title"}
	WorkDateColumns = []string{"WorkDate"}
	packTypeColumns = []string{"PackType"}

	totalBoxesColumns = []string{"TotalBoxes"}
	ctPerBoxColumns   = []string{"CtPerBox"}
	looseCTColumns    = []string{"LooseCT"}

	totalRawColumns   = []string{"TotalRawMaterial"}
	rawUnitColumns    = []string{"RawMaterialUnit"}
	unitWeightColumns = []string{"MaterialUnitWeightKg"}

	wastageColumns     = []string{"Wastage"}
	wastageUnitColumns = []string{"WastageUnit"}

	wagePerHourColumns  = []string{"WagePerHour"}
	materialCostColumns = []string{"MaterialCost"}

	includeExtraColumns = []string{"IncludeExtraCost", "IncludeExtraCost1", "IncludeExtraCost2"}
	extraPctColumns     = []string{"ExtraCostPct", "ExtraCostPercentage", "OverheadPct", "OverheadPctDefault"}
	sellPriceColumns    = []string{"SellPricePerCT", "SellPricePerCt", "SellPricePerCT1"}
)

// BatchInput is one production batch's configuration, read once per
// calculation from the external batch record.
type BatchInput struct {
	BatchNo  string    `json:"batch_no"`
	WorkDate time.Time `json:"work_date"`
	PackType string    `json:"pack_type"`

	TotalBoxes float64 `json:"total_boxes"`
	CtPerBox   float64 `json:"ct_per_box"`
	LooseCT    float64 `json:"loose_ct"`

	TotalRawMaterial     float64 `json:"total_raw_material"`
	RawMaterialUnit      string  `json:"raw_material_unit"`
	MaterialUnitWeightKg float64 `json:"material_unit_weight_kg"`

	Wastage     float64 `json:"wastage"`
	WastageUnit string  `json:"wastage_unit"`

	WagePerHour  float64 `json:"wage_per_hour"`
	MaterialCost float64 `json:"material_cost"`

	IncludeExtraCost bool    `json:"include_extra_cost"`
	ExtraCostPct     float64 `json:"extra_cost_pct"`
	SellPricePerCT   float64 `json:"sell_price_per_ct"`
}

// ParseBatchInput extracts a BatchInput snapshot from a raw batch record.
// Missing or malformed fields degrade to zero values instead of failing the
// whole batch.
func ParseBatchInput(f Fields) BatchInput {
	return BatchInput{
		BatchNo:  f.Text("", BatchNoColumns...),
		WorkDate: f.Date(WorkDateColumns...),
		PackType: f.Text("", packTypeColumns...),

		TotalBoxes: f.Float(0, totalBoxesColumns...),
		CtPerBox:   f.Float(0, ctPerBoxColumns...),
		LooseCT:    f.Float(0, looseCTColumns...),

		TotalRawMaterial:     f.Float(0, totalRawColumns...),
		RawMaterialUnit:      f.Text("", rawUnitColumns...),
		MaterialUnitWeightKg: f.Float(0, unitWeightColumns...),

		Wastage:     f.Float(0, wastageColumns...),
		WastageUnit: f.Text("kg", wastageUnitColumns...),

		WagePerHour:  f.Float(0, wagePerHourColumns...),
		MaterialCost: f.Float(0, materialCostColumns...),

		IncludeExtraCost: f.Bool(false, includeExtraColumns...),
		ExtraCostPct:     f.Float(0, extraPctColumns...),
		SellPricePerCT:   f.Float(0, sellPriceColumns...),
	}
}

// TotalOutputCT is the finished output quantity in count units. The identity
// boxes*ctPerBox + loose holds even when any term is zero.
func (b BatchInput) TotalOutputCT() float64 {
	return b.TotalBoxes*b.CtPerBox + b.LooseCT
}

var (
	batchLookupColumns = []string{"BatchLookupId"}
	batchLabelColumns  = []string{"Batch", "BatchNo", "Title"}
	startTimeColumns   = []string{"StartTime"}
	endTimeColumns     = []string{"EndTime"}
	peopleColumns      = []string{"People"}
	roleColumns        = []string{"Role"}
)

// LabourLine is one worked interval recorded against a batch.
type LabourLine struct {
	ItemID        string    `json:"item_id"`
	BatchLookupID int       `json:"batch_lookup_id"`
	BatchLabel    string    `json:"batch_label"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Headcount     float64   `json:"headcount"`
	Role          string    `json:"role"`
}

// ParseLabourLine extracts a LabourLine from a raw labour record. Malformed
// timestamps come out as zero times, which later aggregate to zero duration.
func ParseLabourLine(itemID string, f Fields) LabourLine {
	return LabourLine{
		ItemID:        itemID,
		BatchLookupID: f.Int(0, batchLookupColumns...),
		BatchLabel:    f.Text("", batchLabelColumns...),
		Start:         f.Time(startTimeColumns...),
		End:           f.Time(endTimeColumns...),
		Headcount:     f.Float(0, peopleColumns...),
		Role:          f.Text("", roleColumns...),
	}
}

// BelongsTo reports whether the line belongs to the given batch: numeric
// lookup-id equality is preferred, with a trimmed text-label match as the
// fallback for lists that never got the lookup column.
func (l LabourLine) BelongsTo(batchItemID int, batchNo string) bool {
	if l.BatchLookupID != 0 && l.BatchLookupID == batchItemID {
		return true
	}
	label := strings.TrimSpace(l.BatchLabel)
	return label != "" && label == strings.TrimSpace(batchNo)
}
