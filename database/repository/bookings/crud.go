package bookingRepo

import (
	"context"
	"fmt"

	"grillbook/models"

	"google.golang.org/api/sheets/v4"
)

// headerRow is rewritten by ClearAndReset after wiping the table.
var headerRow = []interface{}{"Booking ID", "Name", "Date", "Time", "Number of Persons", "Created At"}

// Append adds one booking row at the bottom of the table.
func (r *sheetsBookingRepo) Append(ctx context.Context, rec models.BookingRecord) error {
	body := &sheets.ValueRange{Values: [][]interface{}{rec.Row()}}
	_, err := r.values.Append(r.sheetID, r.readRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking row: %w", err)
	}
	return nil
}

// FindAndReplace scans the rows top-down and rewrites the first whose first
// column equals id. The whole range is rewritten in place, matching the
// scan-and-rewrite behavior of the store; not safe against concurrent
// writers to the same booking ID.
func (r *sheetsBookingRepo) FindAndReplace(ctx context.Context, id string, rec models.BookingRecord) (bool, error) {
	resp, err := r.values.Get(r.sheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("read booking rows: %w", err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 || fmt.Sprint(row[0]) != id {
			continue
		}
		resp.Values[i] = rec.Row()
		body := &sheets.ValueRange{Values: resp.Values}
		_, err := r.values.Update(r.sheetID, r.readRange, body).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return false, fmt.Errorf("rewrite booking rows: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// ClearAndReset wipes every row and rewrites the header row.
func (r *sheetsBookingRepo) ClearAndReset(ctx context.Context) error {
	_, err := r.values.Clear(r.sheetID, r.readRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear booking rows: %w", err)
	}

	body := &sheets.ValueRange{Values: [][]interface{}{headerRow}}
	_, err = r.values.Update(r.sheetID, r.readRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	return nil
}
