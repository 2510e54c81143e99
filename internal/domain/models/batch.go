package models

import (
	"time"

	"github.com/mamadbah2/batchcost/internal/costing"
)

// BatchSummary identifies one batch for pickers and scheduled runs.
type BatchSummary struct {
	ItemID   string    `json:"item_id"`
	BatchNo  string    `json:"batch_no"`
	WorkDate time.Time `json:"work_date"`
	Label    string    `json:"label"`
}

// BatchCalculation is the full outcome of costing one batch: the inputs that
// were read, the per-line labour figures, the derived metrics, and any output
// fields that could not be resolved against the list schema during
// write-back.
type BatchCalculation struct {
	ItemID  string `json:"item_id"`
	BatchNo string `json:"batch_no"`

	Inputs      costing.BatchInput         `json:"inputs"`
	LabourLines []costing.LabourLineResult `json:"labour_lines"`
	Result      costing.CalculationResult  `json:"result"`

	CalculatedAt     time.Time `json:"calculated_at"`
	UnresolvedFields []string  `json:"unresolved_fields,omitempty"`
}
