package handlers

import (
	"net/http"

	bookingRepo "grillbook/database/repository/bookings"
	"grillbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes maintenance operations on the booking store.
type AdminHandler struct {
	Bookings bookingRepo.BookingRepository
}

func NewAdminHandler(bookings bookingRepo.BookingRepository) *AdminHandler {
	return &AdminHandler{Bookings: bookings}
}

// ClearSpreadsheetHandler handles POST /clear-spreadsheet: wipes the booking
// range and rewrites the header row.
func (h *AdminHandler) ClearSpreadsheetHandler(c *gin.Context) {
	if err := h.Bookings.ClearAndReset(c.Request.Context()); err != nil {
		utils.GetLogger().Error("spreadsheet clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Spreadsheet cleared successfully"})
}
