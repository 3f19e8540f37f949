package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	bookingRepo "grillbook/database/repository/bookings"
	"grillbook/models"
	ai "grillbook/services/intelligence"

	"github.com/google/uuid"
)

// Reply texts for the booking dialogue.
const (
	promptAskName   = "Great! Let's make your reservation. What's your name?"
	promptAskDate   = "What date would you like to make the reservation for? (Please provide in YYYY-MM-DD format)"
	promptAskTime   = "What time would you like to make the reservation for? (Please provide in HH:MM format)"
	promptPersons   = "How many persons will be dining?"
	promptBookingID = "Please provide your booking ID to update your reservation."

	promptUpdateName = "What's the name for this booking?"
	promptUpdateDate = "What's the new date for your reservation? (Please provide in YYYY-MM-DD format)"
	promptUpdateTime = "What's the new time for your reservation? (Please provide in HH:MM format)"

	repromptDate      = "Please provide the date in YYYY-MM-DD format (e.g., 2024-03-20)"
	repromptTime      = "Please provide the time in HH:MM format (e.g., 19:30)"
	repromptPersons   = "Please provide a valid number of persons (greater than 0)."
	repromptBookingID = "Please provide a valid 8-character booking ID."

	replyConfirmed = "Great! Your booking has been confirmed. Your booking ID is: %s\n\nPlease keep this ID safe for any future modifications to your reservation."
	replyUpdated   = "Your booking has been successfully updated!"
	replyNotFound  = "Sorry, I couldn't find your booking. Please check the booking ID and try again."
)

// Engine drives the per-session booking dialogue. Outside a flow it answers
// through the completion service; inside a flow it walks the transition
// table below.
type Engine struct {
	Completions ai.CompletionService
	Bookings    bookingRepo.BookingRepository
}

// step is one row of the dialogue transition table. A nil validate accepts
// any text. Steps either advance to next with a fixed prompt, or finalize
// the flow with an adapter call.
type step struct {
	validate func(string) bool
	assign   func(*models.BookingDraft, string)
	next     models.BookingState
	prompt   string
	reprompt string
	finalize func(*Engine, context.Context, models.BookingDraft) (string, error)
}

var transitions = map[models.BookingState]step{
	models.StateAskName: {
		assign: func(d *models.BookingDraft, s string) { d.Name = s },
		next:   models.StateAskDate,
		prompt: promptAskDate,
	},
	models.StateAskDate: {
		validate: validDate,
		assign:   func(d *models.BookingDraft, s string) { d.Date = s },
		next:     models.StateAskTime,
		prompt:   promptAskTime,
		reprompt: repromptDate,
	},
	models.StateAskTime: {
		validate: validTime,
		assign:   func(d *models.BookingDraft, s string) { d.Time = s },
		next:     models.StateAskPersons,
		prompt:   promptPersons,
		reprompt: repromptTime,
	},
	models.StateAskPersons: {
		validate: validPersons,
		assign:   assignPersons,
		next:     models.StateNone,
		reprompt: repromptPersons,
		finalize: (*Engine).createBooking,
	},
	models.StateAskBookingID: {
		validate: func(s string) bool { return len(s) == 8 },
		assign:   func(d *models.BookingDraft, s string) { d.BookingID = s },
		next:     models.StateUpdateName,
		prompt:   promptUpdateName,
		reprompt: repromptBookingID,
	},
	models.StateUpdateName: {
		assign: func(d *models.BookingDraft, s string) { d.Name = s },
		next:   models.StateUpdateDate,
		prompt: promptUpdateDate,
	},
	models.StateUpdateDate: {
		validate: validDate,
		assign:   func(d *models.BookingDraft, s string) { d.Date = s },
		next:     models.StateUpdateTime,
		prompt:   promptUpdateTime,
		reprompt: repromptDate,
	},
	models.StateUpdateTime: {
		validate: validTime,
		assign:   func(d *models.BookingDraft, s string) { d.Time = s },
		next:     models.StateUpdatePersons,
		prompt:   promptPersons,
		reprompt: repromptTime,
	},
	models.StateUpdatePersons: {
		validate: validPersons,
		assign:   assignPersons,
		next:     models.StateNone,
		reprompt: repromptPersons,
		finalize: (*Engine).updateBooking,
	},
}

// Process takes one incoming user message and returns the reply text,
// advancing the session's dialogue state. Validation failures re-prompt
// without advancing; adapter failures return an error with the session
// untouched, since state and draft mutate only after a successful call.
func (e *Engine) Process(ctx context.Context, sess *Session, text string) (string, error) {
	if sess.State == models.StateNone {
		return e.processIdle(ctx, sess, text)
	}

	st, ok := transitions[sess.State]
	if !ok {
		return "", fmt.Errorf("unknown dialogue state %q", sess.State)
	}

	if st.validate != nil && !st.validate(text) {
		return st.reprompt, nil
	}

	if st.finalize != nil {
		draft := sess.Draft
		st.assign(&draft, text)
		reply, err := st.finalize(e, ctx, draft)
		if err != nil {
			return "", err
		}
		sess.State = models.StateNone
		sess.Draft = models.BookingDraft{}
		return reply, nil
	}

	st.assign(&sess.Draft, text)
	sess.State = st.next
	return st.prompt, nil
}

// processIdle matches flow trigger words, falling through to an open-domain
// completion grounded on the summary and the full session history.
func (e *Engine) processIdle(ctx context.Context, sess *Session, text string) (string, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "book") || strings.Contains(lower, "reservation"):
		sess.State = models.StateAskName
		return promptAskName, nil
	case strings.Contains(lower, "update"):
		sess.State = models.StateAskBookingID
		return promptBookingID, nil
	}

	// The transport has already appended the in-flight user turn to the
	// history, and it is sent again as the final message, so the prompt
	// carries it twice.
	history := make([]models.Message, 0, len(sess.Messages)+1)
	history = append(history, sess.Messages...)
	history = append(history, models.Message{Role: models.RoleUser, Content: text})

	reply, err := e.Completions.Complete(ctx, sess.Summary, history)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	return reply, nil
}

func (e *Engine) createBooking(ctx context.Context, draft models.BookingDraft) (string, error) {
	rec := models.BookingRecord{
		ID:        uuid.New().String()[:8],
		Name:      draft.Name,
		Date:      draft.Date,
		Time:      draft.Time,
		Persons:   draft.Persons,
		CreatedAt: time.Now(),
	}
	if err := e.Bookings.Append(ctx, rec); err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}
	return fmt.Sprintf(replyConfirmed, rec.ID), nil
}

func (e *Engine) updateBooking(ctx context.Context, draft models.BookingDraft) (string, error) {
	rec := models.BookingRecord{
		ID:        draft.BookingID,
		Name:      draft.Name,
		Date:      draft.Date,
		Time:      draft.Time,
		Persons:   draft.Persons,
		CreatedAt: time.Now(),
	}
	found, err := e.Bookings.FindAndReplace(ctx, draft.BookingID, rec)
	if err != nil {
		return "", fmt.Errorf("update booking: %w", err)
	}
	if !found {
		return replyNotFound, nil
	}
	return replyUpdated, nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validPersons(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func assignPersons(d *models.BookingDraft, s string) {
	n, _ := strconv.Atoi(s)
	d.Persons = n
}
