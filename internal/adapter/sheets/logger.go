package sheets

import (
	"context"
	"fmt"
	"time"

	"faq-agent/internal/domain/entity"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Logger appends one row per interaction to a Google Sheet: timestamp,
// client id, question, answer, source tag and the three classification
// labels. Optional collaborator: the orchestrator works without it.
type Logger struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewLogger builds the sink from a service-account credentials JSON blob
// and the target spreadsheet ID.
func NewLogger(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*Logger, error) {
	srv, err := sheetsapi.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to init sheets service: %w", err)
	}
	return &Logger{service: srv, spreadsheetID: spreadsheetID}, nil
}

func (l *Logger) Log(ctx context.Context, rec entity.Interaction) error {
	row := []any{
		rec.Timestamp.Format(time.RFC3339),
		rec.ClientID,
		rec.Question,
		rec.Answer,
		rec.Source,
		rec.Profile.BusinessType,
		rec.Profile.Intent,
		rec.Profile.Familiarity,
	}
	_, err := l.service.Spreadsheets.Values.
		Append(l.spreadsheetID, "A1", &sheetsapi.ValueRange{Values: [][]any{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append interaction row: %w", err)
	}
	return nil
}
