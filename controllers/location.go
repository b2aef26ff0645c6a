// controllers/location.go
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

// CreateLocationInput defines the expected JSON structure for creating a location
type CreateLocationInput struct {
	Country         string  `json:"country"`
	City            string  `json:"city"`
	Area            string  `json:"area"`
	Zip             string  `json:"zip" binding:"required"`
	PriceAdjustment float64 `json:"priceAdjustment"`
	ServiceFee      float64 `json:"serviceFee" binding:"min=0"`
}

// UpdateLocationInput defines the expected JSON structure for updating a location
type UpdateLocationInput struct {
	Country         *string  `json:"country"`
	City            *string  `json:"city"`
	Area            *string  `json:"area"`
	Zip             *string  `json:"zip"`
	PriceAdjustment *float64 `json:"priceAdjustment"`
	ServiceFee      *float64 `json:"serviceFee"`
	IsActive        *bool    `json:"isActive"`
}

// CreateLocation creates a new serviceable area entry
func CreateLocation(c *gin.Context) {
	var input CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateZip(input.Zip) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ZIP code format")
		return
	}
	zip := utils.NormalizeZip(input.Zip)

	// Check if the ZIP already exists
	var existingLocation models.Location
	if err := config.DB.Where("zip = ?", zip).First(&existingLocation).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Location with this ZIP already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	location := models.Location{
		Country:         input.Country,
		City:            input.City,
		Area:            input.Area,
		Zip:             zip,
		PriceAdjustment: input.PriceAdjustment,
		ServiceFee:      input.ServiceFee,
		IsActive:        true,
	}

	if err := config.DB.Create(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create location")
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetLocations retrieves all serviceable area entries
func GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := config.DB.Order("zip ASC").Find(&locations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocation retrieves a specific location by ID
func GetLocation(c *gin.Context) {
	locationID := c.Param("id")
	locationUUID, err := uuid.Parse(locationID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	var location models.Location
	if err := config.DB.Where("id = ?", locationUUID).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, location)
}

// UpdateLocation updates an existing location
func UpdateLocation(c *gin.Context) {
	locationID := c.Param("id")
	locationUUID, err := uuid.Parse(locationID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	var input UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var location models.Location
	if err := config.DB.Where("id = ?", locationUUID).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Zip != nil {
		if !utils.ValidateZip(*input.Zip) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid ZIP code format")
			return
		}
		zip := utils.NormalizeZip(*input.Zip)

		if location.Zip != zip {
			var existingLocation models.Location
			if err := config.DB.Where("zip = ?", zip).First(&existingLocation).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another location with this ZIP already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			location.Zip = zip
		}
	}
	if input.Country != nil {
		location.Country = *input.Country
	}
	if input.City != nil {
		location.City = *input.City
	}
	if input.Area != nil {
		location.Area = *input.Area
	}
	if input.PriceAdjustment != nil {
		location.PriceAdjustment = *input.PriceAdjustment
	}
	if input.ServiceFee != nil {
		if *input.ServiceFee < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Service fee cannot be negative")
			return
		}
		location.ServiceFee = *input.ServiceFee
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update location")
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation soft deletes a location
func DeleteLocation(c *gin.Context) {
	locationID := c.Param("id")
	locationUUID, err := uuid.Parse(locationID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	result := config.DB.Where("id = ?", locationUUID).Delete(&models.Location{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete location")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
