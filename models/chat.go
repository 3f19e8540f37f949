package models

// Message roles as sent to the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn in a session's history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BookingState names where a session currently sits in a dialogue flow.
type BookingState string

const (
	// StateNone is both the initial and the resting state; no flow in progress.
	StateNone BookingState = "none"

	// New-booking flow.
	StateAskName    BookingState = "ask_name"
	StateAskDate    BookingState = "ask_date"
	StateAskTime    BookingState = "ask_time"
	StateAskPersons BookingState = "ask_persons"

	// Update-booking flow.
	StateAskBookingID  BookingState = "ask_booking_id"
	StateUpdateName    BookingState = "update_name"
	StateUpdateDate    BookingState = "update_date"
	StateUpdateTime    BookingState = "update_time"
	StateUpdatePersons BookingState = "update_persons"
)

// BookingDraft holds the fields collected step by step during a dialogue
// flow. It is zeroed whenever a flow finishes.
type BookingDraft struct {
	Name      string
	Date      string
	Time      string
	Persons   int
	BookingID string
}

// Empty reports whether no field has been collected yet.
func (d BookingDraft) Empty() bool {
	return d == BookingDraft{}
}
