// controllers/employee.go
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

// AddEmployeeInput defines the expected JSON structure for adding a staff account
type AddEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateEmployeeInput defines the expected JSON structure for updating a staff account
type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// GetEmployees lists all staff accounts
func GetEmployees(c *gin.Context) {
	var employees []models.User
	if err := config.DB.Where("role = ?", models.RoleStaff).
		Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	// Never expose password hashes
	response := make([]gin.H, 0, len(employees))
	for _, e := range employees {
		response = append(response, gin.H{
			"id":        e.ID,
			"name":      e.Name,
			"email":     e.Email,
			"phone":     e.Phone,
			"isActive":  e.IsActive,
			"lastLogin": e.LastLogin,
		})
	}

	c.JSON(http.StatusOK, response)
}

// AddEmployee creates a staff account
func AddEmployee(c *gin.Context) {
	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	if err := config.DB.Where("email = ?", input.Email).
		First(&existingUser).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	employee := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password, // Hashed in BeforeCreate hook
		Role:     models.RoleStaff,
		IsActive: true,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    employee.ID,
		"name":  employee.Name,
		"email": employee.Email,
		"phone": employee.Phone,
	})
}

// UpdateEmployee updates a staff account
func UpdateEmployee(c *gin.Context) {
	employeeID := c.Param("id")
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.User
	if err := config.DB.Where("id = ? AND role = ?", employeeUUID, models.RoleStaff).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       employee.ID,
		"name":     employee.Name,
		"email":    employee.Email,
		"phone":    employee.Phone,
		"isActive": employee.IsActive,
	})
}

// DeleteEmployee soft deletes a staff account
func DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("id")
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	result := config.DB.Where("id = ? AND role = ?", employeeUUID, models.RoleStaff).
		Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
