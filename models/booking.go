package models

import "time"

// BookingRecord is one confirmed reservation as stored in the external
// spreadsheet, one row per booking.
type BookingRecord struct {
	ID        string
	Name      string
	Date      string
	Time      string
	Persons   int
	CreatedAt time.Time
}

// Row returns the record as the 6-column sheet row:
// Booking ID, Name, Date, Time, Number of Persons, Created At.
func (r BookingRecord) Row() []interface{} {
	return []interface{}{
		r.ID,
		r.Name,
		r.Date,
		r.Time,
		r.Persons,
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
