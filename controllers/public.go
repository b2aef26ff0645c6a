// controllers/public.go
package controllers

import (
	"errors"
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

// QuoteInput defines the JSON structure of a public price-preview request.
// Options maps sub-service ids to the submitted form values.
type QuoteInput struct {
	ServiceID uuid.UUID            `json:"serviceId" binding:"required"`
	Options   map[uuid.UUID]string `json:"options"`
	Zip       string               `json:"zip"`
}

// ClientInput is the contact block of a public booking submission
type ClientInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateBookingInput defines the JSON structure of a public booking submission
type CreateBookingInput struct {
	ServiceID   uuid.UUID            `json:"serviceId" binding:"required"`
	Options     map[uuid.UUID]string `json:"options"`
	Zip         string               `json:"zip"`
	BookingDate time.Time            `json:"bookingDate" binding:"required"`
	Notes       string               `json:"notes"`
	Client      ClientInput          `json:"client" binding:"required"`
}

// QuoteBooking prices a submission without persisting anything
func QuoteBooking(c *gin.Context) {
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, err := pricingService.Quote(input.ServiceID, input.Options, input.Zip)
	if err != nil {
		if errors.Is(err, services.ErrInvalidService) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found or not bookable")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute quote")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateBooking handles a public booking submission
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Client.Phone != "" && !utils.ValidatePhone(input.Client.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if input.BookingDate.Before(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "Booking date must be in the future")
		return
	}

	// Required sub-services must carry a value before pricing runs
	if err := validateRequiredOptions(input.ServiceID, input.Options); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := bookingService.Create(services.BookingSubmission{
		ServiceID:   input.ServiceID,
		Selections:  input.Options,
		Zip:         input.Zip,
		BookingDate: input.BookingDate,
		Notes:       input.Notes,
		Client: services.ClientDetails{
			Name:    input.Client.Name,
			Email:   input.Client.Email,
			Phone:   input.Client.Phone,
			Address: input.Client.Address,
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidService) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found or not bookable")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// validateRequiredOptions rejects submissions missing a value for any
// required, active sub-service attached to the service.
func validateRequiredOptions(serviceID uuid.UUID, options map[uuid.UUID]string) error {
	var links []models.ServiceSubService
	if err := config.DB.Preload("SubService").
		Where("service_id = ?", serviceID).Find(&links).Error; err != nil {
		return errors.New("failed to load service options")
	}

	for _, link := range links {
		sub := link.SubService
		if !sub.Required || !sub.IsActive {
			continue
		}
		if options[sub.ID] == "" {
			return errors.New("missing required option: " + sub.Name)
		}
	}
	return nil
}

// CheckServiceArea reports whether a ZIP code is serviceable and what
// pricing applies there
func CheckServiceArea(c *gin.Context) {
	zip := c.Query("zip")
	if zip == "" || !utils.ValidateZip(zip) {
		utils.RespondWithError(c, http.StatusBadRequest, "A valid 'zip' query parameter is required")
		return
	}

	var location models.Location
	err := config.DB.Where("zip = ? AND is_active = ?", utils.NormalizeZip(zip), true).
		First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"serviceable": false,
				"zip":         utils.NormalizeZip(zip),
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"serviceable":     true,
		"zip":             location.Zip,
		"city":            location.City,
		"area":            location.Area,
		"priceAdjustment": location.PriceAdjustment,
		"serviceFee":      location.ServiceFee,
	})
}

// GetPublicServices lists active services with their active sub-services,
// the data the booking form renders
func GetPublicServices(c *gin.Context) {
	var svcList []models.Service
	if err := config.DB.Preload("SubServices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("SubServices.SubService.Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("is_active = ?", true).Find(&svcList).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, svcList)
}
