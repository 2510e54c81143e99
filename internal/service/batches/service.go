package batches

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/batchcost/internal/costing"
	"github.com/mamadbah2/batchcost/internal/domain/models"
	"github.com/mamadbah2/batchcost/internal/repository/graph"
	"github.com/mamadbah2/batchcost/internal/repository/mongodb"
	"github.com/mamadbah2/batchcost/internal/repository/sheets"
)

// ErrBatchNotFound indicates the requested batch item does not exist in the
// batches list.
var ErrBatchNotFound = errors.New("batch not found")

// API describes the costing operations exposed over HTTP and to the
// scheduler.
type API interface {
	ListBatches(ctx context.Context, start, end time.Time) ([]models.BatchSummary, error)
	Calculate(ctx context.Context, itemID string) (*models.BatchCalculation, error)
	Recalculate(ctx context.Context, itemID string, writeLabour bool) (*models.BatchCalculation, error)
}

// Service orchestrates the costing flow: fetch records from the store, run
// the pure calculation, resolve output fields against the list schema, write
// back, and archive the outcome.
type Service struct {
	store   graph.Store
	archive mongodb.Repository
	ledger  sheets.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new costing service instance. The ledger may be nil
// when the Google Sheets ledger is not configured.
func NewService(store graph.Store, archive mongodb.Repository, ledger sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		archive: archive,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
	}
}

// ListBatches returns the batches whose WorkDate falls inside the inclusive
// date range. A zero start or end leaves that side unbounded. Batches without
// a parsable WorkDate are skipped, matching how operators pick batches.
func (s *Service) ListBatches(ctx context.Context, start, end time.Time) ([]models.BatchSummary, error) {
	items, err := s.store.Batches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}

	summaries := make([]models.BatchSummary, 0, len(items))
	for _, item := range items {
		workDate := item.Fields.Date(costing.WorkDateColumns...)
		if workDate.IsZero() {
			continue
		}
		if !start.IsZero() && workDate.Before(start) {
			continue
		}
		if !end.IsZero() && workDate.After(end) {
			continue
		}

		batchNo := strings.TrimSpace(item.Fields.Text("", costing.BatchNoColumns...))
		summaries = append(summaries, models.BatchSummary{
			ItemID:   item.ID,
			BatchNo:  batchNo,
			WorkDate: workDate,
			Label:    fmt.Sprintf("%s  (%s)", batchNo, workDate.Format("2006-01-02")),
		})
	}

	return summaries, nil
}

// Calculate fetches one batch and its labour lines, runs the costing engine
// and returns the full calculation without writing anything back.
func (s *Service) Calculate(ctx context.Context, itemID string) (*models.BatchCalculation, error) {
	items, err := s.store.Batches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}

	var batch *graph.Item
	for i := range items {
		if items[i].ID == itemID {
			batch = &items[i]
			break
		}
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, itemID)
	}

	input := costing.ParseBatchInput(batch.Fields)

	labourItems, err := s.store.LabourLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load labour lines: %w", err)
	}

	lookupID, _ := strconv.Atoi(itemID)
	var lines []costing.LabourLine
	for _, item := range labourItems {
		line := costing.ParseLabourLine(item.ID, item.Fields)
		if line.BelongsTo(lookupID, input.BatchNo) {
			lines = append(lines, line)
		}
	}

	rows, totalPersonMinutes := costing.AggregateLabour(lines)
	result := costing.Calculate(input, totalPersonMinutes)

	s.logger.Debug("batch calculated",
		zap.String("item_id", itemID),
		zap.String("batch_no", input.BatchNo),
		zap.Int("labour_lines", len(rows)),
		zap.Float64("total_output_ct", result.TotalOutputCT))

	return &models.BatchCalculation{
		ItemID:       itemID,
		BatchNo:      input.BatchNo,
		Inputs:       input,
		LabourLines:  rows,
		Result:       result,
		CalculatedAt: s.now().UTC(),
	}, nil
}

// Recalculate runs Calculate and writes the derived metrics back into the
// batch record, resolving each logical output against the list's actual
// column names. With writeLabour set, every matched labour line also gets its
// duration and person-minutes patched.
//
// Outputs that cannot be resolved are reported on the returned calculation
// and logged as a warning; resolving nothing at all fails the call.
func (s *Service) Recalculate(ctx context.Context, itemID string, writeLabour bool) (*models.BatchCalculation, error) {
	calc, err := s.Calculate(ctx, itemID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.store.BatchColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batch columns: %w", err)
	}

	patch, err := costing.Resolve(catalog, batchOutputFields(calc.Result, calc.CalculatedAt))
	if err != nil {
		return nil, fmt.Errorf("resolve batch outputs: %w", err)
	}
	calc.UnresolvedFields = patch.Unresolved
	if len(patch.Unresolved) > 0 {
		s.logger.Warn("some batch outputs could not be resolved",
			zap.String("item_id", itemID),
			zap.Strings("unresolved", patch.Unresolved))
	}

	if err := s.store.UpdateBatch(ctx, itemID, patch.Fields); err != nil {
		return nil, fmt.Errorf("write batch outputs: %w", err)
	}

	if writeLabour && len(calc.LabourLines) > 0 {
		if err := s.writeLabourLines(ctx, calc.LabourLines); err != nil {
			return nil, err
		}
	}

	s.archiveSnapshot(ctx, calc)
	s.appendLedgerRow(ctx, calc)

	return calc, nil
}

func (s *Service) writeLabourLines(ctx context.Context, rows []costing.LabourLineResult) error {
	catalog, err := s.store.LabourColumns(ctx)
	if err != nil {
		return fmt.Errorf("load labour columns: %w", err)
	}

	for _, row := range rows {
		patch, err := costing.Resolve(catalog, labourOutputFields(row))
		if err != nil {
			return fmt.Errorf("resolve labour outputs: %w", err)
		}
		if err := s.store.UpdateLabourLine(ctx, row.ItemID, patch.Fields); err != nil {
			return fmt.Errorf("write labour line %s: %w", row.ItemID, err)
		}
	}

	return nil
}

// archiveSnapshot persists the outcome to MongoDB. Archiving is best-effort:
// the write-back already succeeded, so a failed archive is logged rather than
// surfaced.
func (s *Service) archiveSnapshot(ctx context.Context, calc *models.BatchCalculation) {
	if s.archive == nil {
		return
	}

	snapshot := models.CalculationSnapshot{
		BatchItemID: calc.ItemID,
		BatchNo:     calc.BatchNo,
		WorkDate:    calc.Inputs.WorkDate,

		TotalOutputCT:   calc.Result.TotalOutputCT,
		TotalManMinutes: calc.Result.TotalManMinutes,
		MinutesPerCT:    calc.Result.MinutesPerCT,
		WastageRatePct:  calc.Result.WastageRatePct,

		LabourCostPerCT:   calc.Result.LabourCostPerCT,
		MaterialCostPerCT: calc.Result.MaterialCostPerCT,
		ExtraCostPerCT:    calc.Result.ExtraCostPerCT,
		TotalCostPerCT:    calc.Result.TotalCostPerCT,
		ProfitPerCT:       calc.Result.ProfitPerCT,
		ProfitTotal:       calc.Result.ProfitTotal,

		RawKg:     calc.Result.RawKg,
		WastageKg: calc.Result.WastageKg,

		UnresolvedFields: calc.UnresolvedFields,
		CalculatedAt:     calc.CalculatedAt,
	}

	if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive calculation snapshot",
			zap.String("item_id", calc.ItemID),
			zap.Error(err))
	}
}

// appendLedgerRow mirrors the outcome into the operations ledger sheet when
// one is configured. Also best-effort.
func (s *Service) appendLedgerRow(ctx context.Context, calc *models.BatchCalculation) {
	if s.ledger == nil {
		return
	}

	values := []interface{}{
		calc.CalculatedAt.Format(time.RFC3339),
		calc.BatchNo,
		calc.Inputs.WorkDate.Format("2006-01-02"),
		calc.Result.TotalOutputCT,
		calc.Result.TotalManMinutes,
		calc.Result.MinutesPerCT,
		calc.Result.WastageRatePct,
		calc.Result.LabourCostPerCT,
		calc.Result.MaterialCostPerCT,
		calc.Result.ExtraCostPerCT,
		calc.Result.TotalCostPerCT,
		calc.Result.ProfitPerCT,
		calc.Result.ProfitTotal,
		calc.Result.RawKg,
		calc.Result.WastageKg,
	}

	if err := s.ledger.AppendRow(ctx, values); err != nil {
		s.logger.Error("failed to append ledger row",
			zap.String("item_id", calc.ItemID),
			zap.Error(err))
	}
}
