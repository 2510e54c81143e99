package costing

import "time"

// LabourLineResult is the derived duration and person-minutes for one labour
// line, keeping the line's own identifier so callers can patch each record
// individually.
type LabourLineResult struct {
	ItemID          string    `json:"item_id"`
	Start           time.Time `json:"start,omitzero"`
	End             time.Time `json:"end,omitzero"`
	Headcount       float64   `json:"headcount"`
	DurationMinutes float64   `json:"duration_minutes"`
	PersonMinutes   float64   `json:"person_minutes"`
	Role            string    `json:"role,omitempty"`
}

// AggregateLabour computes per-line durations and the batch's total
// person-minutes.
//
// A missing start or end timestamp degrades that line to zero duration. When
// the end precedes the start the shift is assumed to have crossed midnight
// once and 24 hours are added; spans longer than a day are not supported.
// Headcount at or below zero contributes zero person-minutes while the
// duration is still reported.
func AggregateLabour(lines []LabourLine) ([]LabourLineResult, float64) {
	results := make([]LabourLineResult, 0, len(lines))
	var totalPersonMinutes float64

	for _, line := range lines {
		duration := lineDuration(line)

		var personMinutes float64
		if line.Headcount > 0 {
			personMinutes = duration * line.Headcount
		}
		totalPersonMinutes += personMinutes

		end := line.End
		if !line.Start.IsZero() && !line.End.IsZero() && line.End.Before(line.Start) {
			end = line.End.Add(24 * time.Hour)
		}

		results = append(results, LabourLineResult{
			ItemID:          line.ItemID,
			Start:           line.Start,
			End:             end,
			Headcount:       line.Headcount,
			DurationMinutes: Round2(duration),
			PersonMinutes:   Round2(personMinutes),
			Role:            line.Role,
		})
	}

	return results, totalPersonMinutes
}

func lineDuration(line LabourLine) float64 {
	if line.Start.IsZero() || line.End.IsZero() {
		return 0
	}

	start, end := line.Start, line.End
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	minutes := end.Sub(start).Minutes()
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}
