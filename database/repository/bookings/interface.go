package bookingRepo

import (
	"context"
	"fmt"

	"grillbook/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// BookingRepository persists bookings in an external tabular store.
type BookingRepository interface {
	// Append adds one booking row at the bottom of the table.
	Append(ctx context.Context, rec models.BookingRecord) error
	// FindAndReplace rewrites the first row whose booking ID matches id.
	// It returns false and performs no write when no row matches.
	FindAndReplace(ctx context.Context, id string, rec models.BookingRecord) (bool, error)
	// ClearAndReset wipes every row and rewrites the header row.
	ClearAndReset(ctx context.Context) error
}

type sheetsBookingRepo struct {
	values    *sheets.SpreadsheetsValuesService
	sheetID   string
	readRange string
}

// NewSheetsBookingRepo returns a BookingRepository backed by the Google
// Sheets values API, authenticated with a service-account credentials file.
func NewSheetsBookingRepo(ctx context.Context, credentialsFile, sheetID, readRange string) (BookingRepository, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &sheetsBookingRepo{
		values:    svc.Spreadsheets.Values,
		sheetID:   sheetID,
		readRange: readRange,
	}, nil
}
