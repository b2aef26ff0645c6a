// controllers/subservice.go
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

// OptionVariantInput defines one named choice of a dropdown/radio sub-service
type OptionVariantInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// CreateSubServiceInput defines the expected JSON structure for creating a sub-service
type CreateSubServiceInput struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	InputType   string               `json:"inputType" binding:"required"`
	BasePrice   float64              `json:"basePrice"`
	Required    bool                 `json:"required"`
	Variants    []OptionVariantInput `json:"variants"`
}

// UpdateSubServiceInput defines the expected JSON structure for updating a sub-service
type UpdateSubServiceInput struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	InputType   *string               `json:"inputType"`
	BasePrice   *float64              `json:"basePrice"`
	Required    *bool                 `json:"required"`
	IsActive    *bool                 `json:"isActive"`
	Variants    *[]OptionVariantInput `json:"variants"`
}

// CreateSubService creates a new sub-service option group
func CreateSubService(c *gin.Context) {
	var input CreateSubServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.ValidInputType(input.InputType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input type: "+input.InputType)
		return
	}

	subService := models.SubService{
		Name:        input.Name,
		Description: input.Description,
		InputType:   input.InputType,
		BasePrice:   input.BasePrice,
		Required:    input.Required,
		IsActive:    true,
	}
	for position, variant := range input.Variants {
		subService.Variants = append(subService.Variants, models.OptionVariant{
			Name:     variant.Name,
			Price:    variant.Price,
			Position: position,
		})
	}

	if err := config.DB.Create(&subService).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sub-service")
		return
	}

	c.JSON(http.StatusCreated, subService)
}

// GetSubServices retrieves all sub-services with their variants
func GetSubServices(c *gin.Context) {
	var subServices []models.SubService
	if err := config.DB.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&subServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sub-services")
		return
	}

	c.JSON(http.StatusOK, subServices)
}

// GetSubService retrieves a specific sub-service by ID
func GetSubService(c *gin.Context) {
	subServiceID := c.Param("id")
	subServiceUUID, err := uuid.Parse(subServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sub-service ID format")
		return
	}

	var subService models.SubService
	if err := config.DB.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", subServiceUUID).First(&subService).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sub-service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, subService)
}

// UpdateSubService updates an existing sub-service
func UpdateSubService(c *gin.Context) {
	subServiceID := c.Param("id")
	subServiceUUID, err := uuid.Parse(subServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sub-service ID format")
		return
	}

	var input UpdateSubServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var subService models.SubService
	if err := config.DB.Where("id = ?", subServiceUUID).First(&subService).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sub-service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		subService.Name = *input.Name
	}
	if input.Description != nil {
		subService.Description = *input.Description
	}
	if input.InputType != nil {
		if !models.ValidInputType(*input.InputType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input type: "+*input.InputType)
			return
		}
		subService.InputType = *input.InputType
	}
	if input.BasePrice != nil {
		subService.BasePrice = *input.BasePrice
	}
	if input.Required != nil {
		subService.Required = *input.Required
	}
	if input.IsActive != nil {
		subService.IsActive = *input.IsActive
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&subService).Error; err != nil {
			return err
		}

		// If variants are being updated, replace the whole list
		if input.Variants != nil {
			if err := tx.Where("sub_service_id = ?", subService.ID).
				Delete(&models.OptionVariant{}).Error; err != nil {
				return err
			}
			for position, variant := range *input.Variants {
				newVariant := models.OptionVariant{
					SubServiceID: subService.ID,
					Name:         variant.Name,
					Price:        variant.Price,
					Position:     position,
				}
				if err := tx.Create(&newVariant).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update sub-service")
		return
	}

	c.JSON(http.StatusOK, subService)
}

// DeleteSubService soft deletes a sub-service and removes its service links
func DeleteSubService(c *gin.Context) {
	subServiceID := c.Param("id")
	subServiceUUID, err := uuid.Parse(subServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sub-service ID format")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_service_id = ?", subServiceUUID).
			Delete(&models.ServiceSubService{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", subServiceUUID).Delete(&models.SubService{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sub-service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sub-service")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-service deleted successfully"})
}
