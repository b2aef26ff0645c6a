// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description"`
	BasePrice     float64     `json:"basePrice" binding:"min=0"`
	Duration      int         `json:"duration" binding:"min=0"` // in minutes
	Category      string      `json:"category"`
	SubServiceIDs []uuid.UUID `json:"subServiceIds"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name          *string      `json:"name"`
	Description   *string      `json:"description"`
	BasePrice     *float64     `json:"basePrice"`
	Duration      *int         `json:"duration"`
	Category      *string      `json:"category"`
	IsActive      *bool        `json:"isActive"`
	SubServiceIDs *[]uuid.UUID `json:"subServiceIds"`
}

// CreateService creates a new cleaning service
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&service).Error; err != nil {
			return err
		}
		return attachSubServices(tx, service.ID, input.SubServiceIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown sub-service in list")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		}
		return
	}

	c.JSON(http.StatusCreated, service)
}

// attachSubServices replaces the ordered sub-service list of a service.
func attachSubServices(tx *gorm.DB, serviceID uuid.UUID, subServiceIDs []uuid.UUID) error {
	if err := tx.Where("service_id = ?", serviceID).
		Delete(&models.ServiceSubService{}).Error; err != nil {
		return err
	}
	for position, subServiceID := range subServiceIDs {
		var subService models.SubService
		if err := tx.First(&subService, "id = ?", subServiceID).Error; err != nil {
			return err
		}
		link := models.ServiceSubService{
			ServiceID:    serviceID,
			SubServiceID: subServiceID,
			Position:     position,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetServices retrieves all services with their sub-service lists
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Preload("SubServices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("SubServices.SubService.Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Preload("SubServices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("SubServices.SubService.Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", serviceUUID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing service
	var service models.Service
	if err := config.DB.Where("id = ?", serviceUUID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided. Price changes never touch existing
	// bookings; totals are snapshotted at booking time.
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.BasePrice != nil {
		service.BasePrice = *input.BasePrice
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&service).Error; err != nil {
			return err
		}
		if input.SubServiceIDs != nil {
			return attachSubServices(tx, service.ID, *input.SubServiceIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown sub-service in list")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a service
func DeleteService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("id = ?", serviceUUID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
