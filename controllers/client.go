package controllers

import (
	"errors"
	"net/http"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/services"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// CreateClient creates a new client record
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	email := utils.NormalizeEmail(input.Email)

	// Check if email already exists
	var existingClient models.Client
	if err := config.DB.Where("email = ?", email).
		First(&existingClient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.Client{
		Name:     input.Name,
		Email:    email,
		Phone:    input.Phone,
		Address:  input.Address,
		Notes:    input.Notes,
		IsActive: true,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Order("created_at DESC").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID with booking history
func GetClient(c *gin.Context) {
	clientID := c.Param("id")
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Preload("Bookings", func(db *gorm.DB) *gorm.DB {
		return db.Order("booking_date DESC")
	}).Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	clientID := c.Param("id")
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing client
	var client models.Client
	if err := config.DB.Where("id = ?", clientUUID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		email := utils.NormalizeEmail(*input.Email)

		// Check if email is being changed to another existing client
		if client.Email != email {
			var existingClient models.Client
			if err := config.DB.Where("email = ?", email).
				First(&existingClient).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another client with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			client.Email = email
		}
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client. Their bookings are detached rather
// than deleted so booking history stays intact.
func DeleteClient(c *gin.Context) {
	clientID := c.Param("id")
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("client_id = ?", clientUUID).
			Update("client_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", clientUUID).Delete(&models.Client{})
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
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// RecalculateClientStats rebuilds the client's aggregate fields from their
// booking history (admin repair action).
func RecalculateClientStats(c *gin.Context) {
	clientID := c.Param("id")
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := statsService.Recalculate(clientUUID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to recalculate stats: "+err.Error())
		}
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, client)
}
