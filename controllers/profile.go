package controllers

import (
	"net/http"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func GetProfile(c *gin.Context) {
	var business models.Business
	if err := config.DB.First(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                  business.Name,
		"address":               business.Address,
		"phone":                 business.Phone,
		"email":                 business.Email,
		"workingHours":          business.WorkingHours,
		"smsNotifications":      business.SMSNotifications,
		"whatsAppNotifications": business.WhatsAppNotifications,
		"bookingReminders":      business.BookingReminders,
	})
}

func UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var business models.Business
	if err := config.DB.First(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business profile not found")
		return
	}

	// Update fields
	business.Name = input.Name
	business.Address = input.Address
	business.Phone = input.Phone
	business.Email = input.Email

	if err := config.DB.Save(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateWorkingHours(c *gin.Context) {
	var input struct {
		WorkingHours models.JSONB `json:"workingHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Business{}).Where("1 = 1").
		Update("working_hours", input.WorkingHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	var input struct {
		SMSNotifications      bool `json:"smsNotifications"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		BookingReminders      bool `json:"bookingReminders"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Business{}).Where("1 = 1").
		Updates(map[string]interface{}{
			"sms_notifications":       input.SMSNotifications,
			"whats_app_notifications": input.WhatsAppNotifications,
			"booking_reminders":       input.BookingReminders,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
