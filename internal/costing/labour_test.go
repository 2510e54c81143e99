package costing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift(t *testing.T, startHour, endHour int, headcount float64) LabourLine {
	t.Helper()
	return LabourLine{
		ItemID:    "1",
		Start:     time.Date(2026, time.August, 21, startHour, 0, 0, 0, time.UTC),
		End:       time.Date(2026, time.August, 21, endHour, 0, 0, 0, time.UTC),
		Headcount: headcount,
	}
}

func TestAggregateLabourBasicShift(t *testing.T) {
	rows, total := AggregateLabour([]LabourLine{dayShift(t, 8, 16, 3)})

	require.Len(t, rows, 1)
	assert.Equal(t, 480.0, rows[0].DurationMinutes)
	assert.Equal(t, 1440.0, rows[0].PersonMinutes)
	assert.Equal(t, 1440.0, total)
}

func TestAggregateLabourOvernightWrap(t *testing.T) {
	line := LabourLine{
		ItemID:    "7",
		Start:     time.Date(2026, time.August, 21, 22, 0, 0, 0, time.UTC),
		End:       time.Date(2026, time.August, 21, 2, 0, 0, 0, time.UTC),
		Headcount: 1,
	}

	rows, total := AggregateLabour([]LabourLine{line})

	require.Len(t, rows, 1)
	assert.Equal(t, 240.0, rows[0].DurationMinutes)
	assert.Equal(t, 240.0, total)
	// the reported end reflects the midnight wrap
	assert.Equal(t, time.Date(2026, time.August, 22, 2, 0, 0, 0, time.UTC), rows[0].End)
}

func TestAggregateLabourMissingTimestamps(t *testing.T) {
	lines := []LabourLine{
		{ItemID: "1", Start: time.Date(2026, time.August, 21, 8, 0, 0, 0, time.UTC), Headcount: 2},
		{ItemID: "2", End: time.Date(2026, time.August, 21, 16, 0, 0, 0, time.UTC), Headcount: 2},
		{ItemID: "3", Headcount: 2},
	}

	rows, total := AggregateLabour(lines)

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 0.0, row.DurationMinutes)
		assert.Equal(t, 0.0, row.PersonMinutes)
	}
	assert.Equal(t, 0.0, total)
}

func TestAggregateLabourNonPositiveHeadcount(t *testing.T) {
	rows, total := AggregateLabour([]LabourLine{
		dayShift(t, 8, 10, 0),
		dayShift(t, 8, 10, -2),
	})

	require.Len(t, rows, 2)
	for _, row := range rows {
		// duration is still computed, it just contributes nothing
		assert.Equal(t, 120.0, row.DurationMinutes)
		assert.Equal(t, 0.0, row.PersonMinutes)
	}
	assert.Equal(t, 0.0, total)
}

func TestAggregateLabourSumsAcrossLines(t *testing.T) {
	rows, total := AggregateLabour([]LabourLine{
		dayShift(t, 8, 12, 2),  // 480 person-minutes
		dayShift(t, 12, 16, 3), // 720 person-minutes
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 1200.0, total)
}

func TestLabourLineBelongsTo(t *testing.T) {
	byLookup := LabourLine{BatchLookupID: 31, BatchLabel: "other"}
	assert.True(t, byLookup.BelongsTo(31, "B-09"))
	assert.False(t, byLookup.BelongsTo(32, "B-09"))

	byLabel := LabourLine{BatchLabel: " B-09 "}
	assert.True(t, byLabel.BelongsTo(31, "B-09"))
	assert.False(t, byLabel.BelongsTo(31, "B-10"))

	empty := LabourLine{}
	assert.False(t, empty.BelongsTo(0, ""))
}
