package batches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/batchcost/internal/costing"
	"github.com/mamadbah2/batchcost/internal/domain/models"
	"github.com/mamadbah2/batchcost/internal/repository/graph"
)

type fakeStore struct {
	batches    []graph.Item
	labour     []graph.Item
	batchCols  []costing.FieldDescriptor
	labourCols []costing.FieldDescriptor

	batchPatches  map[string]map[string]any
	labourPatches map[string]map[string]any
}

func (f *fakeStore) Batches(ctx context.Context) ([]graph.Item, error)     { return f.batches, nil }
func (f *fakeStore) LabourLines(ctx context.Context) ([]graph.Item, error) { return f.labour, nil }
func (f *fakeStore) BatchColumns(ctx context.Context) ([]costing.FieldDescriptor, error) {
	return f.batchCols, nil
}
func (f *fakeStore) LabourColumns(ctx context.Context) ([]costing.FieldDescriptor, error) {
	return f.labourCols, nil
}
func (f *fakeStore) UpdateBatch(ctx context.Context, itemID string, fields map[string]any) error {
	if f.batchPatches == nil {
		f.batchPatches = make(map[string]map[string]any)
	}
	f.batchPatches[itemID] = fields
	return nil
}
func (f *fakeStore) UpdateLabourLine(ctx context.Context, itemID string, fields map[string]any) error {
	if f.labourPatches == nil {
		f.labourPatches = make(map[string]map[string]any)
	}
	f.labourPatches[itemID] = fields
	return nil
}

type fakeArchive struct {
	snapshots []models.CalculationSnapshot
}

func (f *fakeArchive) SaveSnapshot(ctx context.Context, snapshot models.CalculationSnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

type fakeLedger struct {
	rows [][]interface{}
}

func (f *fakeLedger) AppendRow(ctx context.Context, values []interface{}) error {
	f.rows = append(f.rows, values)
	return nil
}

func fixtureStore() *fakeStore {
	return &fakeStore{
		batches: []graph.Item{
			{
				ID: "31",
				Fields: costing.Fields{
					"Title":            "B-2026-081",
					"WorkDate":         "2026-08-21",
					"TotalBoxes":       10.0,
					"CtPerBox":         12.0,
					"WagePerHour":      15.0,
					"MaterialCost":     60.0,
					"IncludeExtraCost": true,
					"ExtraCostPct":     10.0,
					"SellPricePerCT":   2.0,
				},
			},
			{
				ID: "32",
				Fields: costing.Fields{
					"Title":    "B-2026-082",
					"WorkDate": "2026-07-02",
				},
			},
		},
		labour: []graph.Item{
			{
				ID: "7",
				Fields: costing.Fields{
					"BatchLookupId": 31.0,
					"StartTime":     "2026-08-21T08:00:00Z",
					"EndTime":       "2026-08-21T10:00:00Z",
					"People":        2.0,
				},
			},
			{
				ID: "8",
				Fields: costing.Fields{
					"Batch":     "B-2026-082",
					"StartTime": "2026-07-02T08:00:00Z",
					"EndTime":   "2026-07-02T16:00:00Z",
					"People":    4.0,
				},
			},
		},
		batchCols: []costing.FieldDescriptor{
			{InternalID: "TotalOutputCT", DisplayLabel: "Total Output CT"},
			{InternalID: "TotalManMinutes", DisplayLabel: "Total Man Minutes"},
			{InternalID: "MinutesPerCT", DisplayLabel: "Minutes Per CT"},
			{InternalID: "WastageRatePct", DisplayLabel: "Wastage Rate (%)"},
			{InternalID: "LabourCostPerCT", DisplayLabel: "Labour Cost Per CT"},
			{InternalID: "MaterialCostPerCT", DisplayLabel: "Material Cost Per CT"},
			{InternalID: "ExtraCostPerCT", DisplayLabel: "Extra Cost Per CT"},
			{InternalID: "TotalCostPerCT", DisplayLabel: "Total Cost Per CT"},
			{InternalID: "ProfitPerCT", DisplayLabel: "Profit Per CT"},
			{InternalID: "ProfitTotal", DisplayLabel: "Profit Total"},
			{InternalID: "CalculatedAt", DisplayLabel: "Calculated At"},
		},
		labourCols: []costing.FieldDescriptor{
			{InternalID: "DurationMinutes", DisplayLabel: "Duration Minutes"},
			{InternalID: "ManMinutes", DisplayLabel: "Man Minutes"},
		},
	}
}

func TestListBatchesFiltersByWorkDate(t *testing.T) {
	svc := NewService(fixtureStore(), nil, nil, nil)

	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	summaries, err := svc.ListBatches(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "31", summaries[0].ItemID)
	assert.Equal(t, "B-2026-081", summaries[0].BatchNo)
	assert.Equal(t, "B-2026-081  (2026-08-21)", summaries[0].Label)

	// unbounded range returns everything with a work date
	summaries, err = svc.ListBatches(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestListBatchesTrimsBatchLabel(t *testing.T) {
	store := fixtureStore()
	store.batches = append(store.batches, graph.Item{
		ID: "33",
		Fields: costing.Fields{
			"Title":    "  B-2026-083  ",
			"WorkDate": "2026-06-15",
		},
	})
	svc := NewService(store, nil, nil, nil)

	summaries, err := svc.ListBatches(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "B-2026-083", summaries[2].BatchNo)
	assert.Equal(t, "B-2026-083  (2026-06-15)", summaries[2].Label)
}

func TestCalculateMatchesLabourAndDerivesMetrics(t *testing.T) {
	svc := NewService(fixtureStore(), nil, nil, nil)

	calc, err := svc.Calculate(context.Background(), "31")
	require.NoError(t, err)

	assert.Equal(t, "B-2026-081", calc.BatchNo)
	require.Len(t, calc.LabourLines, 1)
	assert.Equal(t, "7", calc.LabourLines[0].ItemID)
	assert.Equal(t, 120.0, calc.LabourLines[0].DurationMinutes)
	assert.Equal(t, 240.0, calc.LabourLines[0].PersonMinutes)

	assert.Equal(t, 120.0, calc.Result.TotalOutputCT)
	assert.Equal(t, 2.0, calc.Result.MinutesPerCT)
	assert.Equal(t, 0.5, calc.Result.LabourCostPerCT)
	assert.Equal(t, 0.5, calc.Result.MaterialCostPerCT)
	assert.Equal(t, 1.1, calc.Result.TotalCostPerCT)
	assert.Equal(t, 0.9, calc.Result.ProfitPerCT)
	assert.Equal(t, 108.0, calc.Result.ProfitTotal)
}

func TestCalculateMatchesLabourByTextLabel(t *testing.T) {
	svc := NewService(fixtureStore(), nil, nil, nil)

	calc, err := svc.Calculate(context.Background(), "32")
	require.NoError(t, err)

	require.Len(t, calc.LabourLines, 1)
	assert.Equal(t, "8", calc.LabourLines[0].ItemID)
	assert.Equal(t, 1920.0, calc.Result.TotalManMinutes)
}

func TestCalculateUnknownBatch(t *testing.T) {
	svc := NewService(fixtureStore(), nil, nil, nil)

	_, err := svc.Calculate(context.Background(), "99")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestRecalculateWritesBackAndArchives(t *testing.T) {
	store := fixtureStore()
	archive := &fakeArchive{}
	ledger := &fakeLedger{}
	svc := NewService(store, archive, ledger, nil)

	calc, err := svc.Recalculate(context.Background(), "31", true)
	require.NoError(t, err)

	patch := store.batchPatches["31"]
	require.NotNil(t, patch)
	assert.Equal(t, 120.0, patch["TotalOutputCT"])
	assert.Equal(t, 0.9, patch["ProfitPerCT"])
	assert.Equal(t, 108.0, patch["ProfitTotal"])
	assert.Contains(t, patch, "CalculatedAt")

	// RawKg and WastageKg have no columns in this list
	assert.Equal(t, []string{"RawKg", "WastageKg"}, calc.UnresolvedFields)

	labourPatch := store.labourPatches["7"]
	require.NotNil(t, labourPatch)
	assert.Equal(t, 120.0, labourPatch["DurationMinutes"])
	assert.Equal(t, 240.0, labourPatch["ManMinutes"])

	require.Len(t, archive.snapshots, 1)
	assert.Equal(t, "B-2026-081", archive.snapshots[0].BatchNo)
	assert.Equal(t, 108.0, archive.snapshots[0].ProfitTotal)

	require.Len(t, ledger.rows, 1)
	assert.Equal(t, "B-2026-081", ledger.rows[0][1])
}

func TestRecalculateSkipsLabourWhenDisabled(t *testing.T) {
	store := fixtureStore()
	svc := NewService(store, nil, nil, nil)

	_, err := svc.Recalculate(context.Background(), "31", false)
	require.NoError(t, err)
	assert.Empty(t, store.labourPatches)
}

func TestRecalculateFailsWhenNothingResolves(t *testing.T) {
	store := fixtureStore()
	store.batchCols = []costing.FieldDescriptor{
		{InternalID: "Unrelated", DisplayLabel: "Unrelated Column"},
	}
	svc := NewService(store, nil, nil, nil)

	_, err := svc.Recalculate(context.Background(), "31", false)
	assert.ErrorIs(t, err, costing.ErrNoFieldsResolved)
	assert.Empty(t, store.batchPatches)
}
