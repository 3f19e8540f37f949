package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"grillbook/handlers"
	"grillbook/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type clearTrackingBookings struct {
	fakeBookings
	clearCalls int
	clearErr   error
}

func (f *clearTrackingBookings) ClearAndReset(context.Context) error {
	f.clearCalls++
	return f.clearErr
}

func (f *clearTrackingBookings) Append(context.Context, models.BookingRecord) error { return nil }

func newAdminRouter(bookings *clearTrackingBookings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAdminHandler(bookings)
	r.POST("/clear-spreadsheet", h.ClearSpreadsheetHandler)
	return r
}

func TestClearSpreadsheet(t *testing.T) {
	bookings := &clearTrackingBookings{}
	r := newAdminRouter(bookings)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clear-spreadsheet", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
	assert.Equal(t, 1, bookings.clearCalls)
}

func TestClearSpreadsheetError(t *testing.T) {
	bookings := &clearTrackingBookings{clearErr: errors.New("sheets unavailable")}
	r := newAdminRouter(bookings)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clear-spreadsheet", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
