package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/batchcost/internal/config"
)

// Repository defines the operations ledger supported by the Google Sheets
// adapter: one appended row per recalculation.
type Repository interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// LedgerRepository implements the Repository interface using the official
// Google Sheets API.
type LedgerRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewLedgerRepository builds a Google Sheets backed ledger instance.
func NewLedgerRepository(ctx context.Context, cfg config.LedgerConfig, logger *zap.Logger) (*LedgerRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &LedgerRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

// AppendRow appends the provided values to the configured ledger range.
func (r *LedgerRepository) AppendRow(ctx context.Context, values []interface{}) error {
	if len(values) == 0 {
		return fmt.Errorf("values must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append ledger row into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("ledger row appended", zap.String("range", r.sheetRange))
	return nil
}
