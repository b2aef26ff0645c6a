package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email           string       `json:"email" binding:"required,email"`
	Phone           string       `json:"phone" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Password        string       `json:"password" binding:"required,min=8"`
	BusinessName    string       `json:"businessName" binding:"required"`
	BusinessAddress string       `json:"businessAddress"`
	WorkingHours    models.JSONB `json:"workingHours"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates the business profile together with its owner account.
// A deployment serves one business, so registration is a one-time action.
func Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Only one business per deployment
	var existingBusiness models.Business
	if err := config.DB.First(&existingBusiness).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Business already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	business := models.Business{
		Name:    input.BusinessName,
		Address: input.BusinessAddress,
		Phone:   input.Phone,
		Email:   input.Email,
	}

	business.WorkingHours = input.WorkingHours
	if business.WorkingHours == nil {
		business.WorkingHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "08:00", "close": "18:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "08:00", "close": "18:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "08:00", "close": "18:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "08:00", "close": "18:00", "closed": false},
			"friday":    map[string]interface{}{"open": "08:00", "close": "18:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "09:00", "close": "15:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "09:00", "close": "15:00", "closed": true},
		}
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     models.RoleOwner,
		IsActive: true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&business).Error; err != nil {
			return err
		}
		return tx.Create(&newUser).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	// Generate token
	token, err := utils.GenerateToken(newUser.ID.String(), newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	// Return response without password
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":           newUser.ID,
			"email":        newUser.Email,
			"phone":        newUser.Phone,
			"role":         newUser.Role,
			"businessName": business.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	email := strings.TrimSpace(input.Email)

	var user models.User
	result := config.DB.Where("email = ? AND is_active = ?", email, true).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Check password
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Generate token
	token, err := utils.GenerateToken(user.ID.String(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	// Return response
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// Return user info
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
