// controllers/booking.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/services"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateBookingInput defines the expected JSON structure for updating a booking
type UpdateBookingInput struct {
	Status         *string    `json:"status" binding:"omitempty,oneof=pending confirmed completed canceled"`
	BookingDate    *time.Time `json:"bookingDate"`
	Notes          *string    `json:"notes"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
}

// BulkBookingInput defines the expected JSON structure for a bulk action
type BulkBookingInput struct {
	Action     string      `json:"action" binding:"required"`
	BookingIDs []uuid.UUID `json:"bookingIds"`
}

// GetBookings retrieves bookings, optionally filtered by status and date range
func GetBookings(c *gin.Context) {
	query := config.DB.Preload("Options").Order("booking_date DESC")

	if status := c.Query("status"); status != "" {
		if !models.ValidBookingStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter: "+status)
			return
		}
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("booking_date >= ?", fromDate)
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("booking_date < ?", toDate.AddDate(0, 0, 1))
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Options").
		Where("id = ?", bookingUUID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking updates a booking's status, date, notes or assignment. The
// total price is a creation-time snapshot and is never recalculated here.
func UpdateBooking(c *gin.Context) {
	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.Where("id = ?", bookingUUID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := authorizeBookingAction(c, booking); err != nil {
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
		return
	}

	wasCompleted := booking.Status == models.BookingStatusCompleted

	if input.Status != nil {
		booking.Status = *input.Status
	}
	if input.BookingDate != nil {
		booking.BookingDate = *input.BookingDate
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}
	if input.AssignedUserID != nil {
		var staff models.User
		if err := config.DB.Where("id = ? AND is_active = ?", *input.AssignedUserID, true).
			First(&staff).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Assigned user not found")
			return
		}
		booking.AssignedUserID = input.AssignedUserID
	}

	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	// A completion-state change invalidates the client aggregates
	isCompleted := booking.Status == models.BookingStatusCompleted
	if wasCompleted != isCompleted && booking.ClientID != nil {
		if err := statsService.Recalculate(*booking.ClientID); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Booking updated but stats recomputation failed: "+err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a booking and its option snapshots
func DeleteBooking(c *gin.Context) {
	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Where("id = ?", bookingUUID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := authorizeBookingAction(c, booking); err != nil {
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", booking.ID).
			Delete(&models.BookingOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	if booking.Status == models.BookingStatusCompleted && booking.ClientID != nil {
		if err := statsService.Recalculate(*booking.ClientID); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Booking deleted but stats recomputation failed: "+err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// BulkBookingAction applies confirm/complete/cancel/delete across a
// selection of bookings. Items the actor may not touch are reported
// individually; the rest still go through.
func BulkBookingAction(c *gin.Context) {
	var input BulkBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	authorize := func(booking models.Booking) error {
		return authorizeBookingAction(c, booking)
	}

	result, err := bulkService.Apply(input.Action, input.BookingIDs, authorize)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			utils.RespondWithError(c, http.StatusBadRequest, "Unrecognized action: "+input.Action)
		case errors.Is(err, services.ErrInvalidRequest):
			utils.RespondWithError(c, http.StatusBadRequest, "No bookings selected")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Bulk action failed")
		}
		return
	}

	status := http.StatusOK
	if result.ErrorCount > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// authorizeBookingAction is the per-booking authorization decision: owners
// may act on any booking, staff only on bookings assigned to them.
func authorizeBookingAction(c *gin.Context, booking models.Booking) error {
	role, _ := c.Get("role")
	if role == models.RoleOwner {
		return nil
	}

	userID, exists := c.Get("userId")
	if !exists {
		return errors.New("user not found in context")
	}
	userUUID, err := uuid.Parse(fmt.Sprint(userID))
	if err != nil {
		return errors.New("invalid user ID")
	}

	if booking.AssignedUserID == nil || *booking.AssignedUserID != userUUID {
		return errors.New("not authorized to modify this booking")
	}
	return nil
}
