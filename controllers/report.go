// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopServices           []ServiceSummary `json:"topServices"`
	TopClients            []ClientSummary  `json:"topClients"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ClientSummary struct {
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Spent    float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalClients      int     `json:"totalClients"`
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	CanceledBookings  int     `json:"canceledBookings"`
	AvgBookingValue   float64 `json:"avgBookingValue"`
	ServiceableZips   int     `json:"serviceableZips"`
}

// GetReportAnalytics returns the revenue analytics summary. Revenue figures
// count completed bookings only, matching the client spend aggregates.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	// Get revenue reports
	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(rc.getQuarterStart(now), rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	// Calculate growth percentages
	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	// Get top services
	topServices, err := rc.getTopServices(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	// Get top clients
	topClients, err := rc.getTopClients(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}

	// Get quick statistics
	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopServices:           topServices,
		TopClients:            topClients,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Booking{}).
		Where("status = ? AND booking_date BETWEEN ? AND ?",
			models.BookingStatusCompleted, start, end).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServices(start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("bookings").
		Select("bookings.service_name as name, COUNT(bookings.id) as count, SUM(bookings.total_price) as revenue").
		Where("bookings.status = ? AND bookings.booking_date BETWEEN ? AND ?",
			models.BookingStatusCompleted, start, end).
		Group("bookings.service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopClients(start, end time.Time, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary

	err := config.DB.Table("bookings").
		Select("clients.name, COUNT(bookings.id) as bookings, SUM(bookings.total_price) as spent").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where("bookings.status = ? AND bookings.booking_date BETWEEN ? AND ? AND clients.deleted_at IS NULL",
			models.BookingStatusCompleted, start, end).
		Group("clients.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&clients).Error

	return clients, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	// Total Clients
	var totalClients int64
	if err := config.DB.Model(&models.Client{}).
		Where("deleted_at IS NULL").
		Count(&totalClients).Error; err != nil {
		return stats, err
	}
	stats.TotalClients = int(totalClients)

	// Booking counts by status
	var totalBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Count(&totalBookings).Error; err != nil {
		return stats, err
	}
	stats.TotalBookings = int(totalBookings)

	var completedBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Count(&completedBookings).Error; err != nil {
		return stats, err
	}
	stats.CompletedBookings = int(completedBookings)

	var canceledBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCanceled).
		Count(&canceledBookings).Error; err != nil {
		return stats, err
	}
	stats.CanceledBookings = int(canceledBookings)

	// Average booking value over completed bookings
	var avgValue float64
	if err := config.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Select("COALESCE(AVG(total_price), 0)").
		Scan(&avgValue).Error; err != nil {
		return stats, err
	}
	stats.AvgBookingValue = avgValue

	// Serviceable areas
	var zips int64
	if err := config.DB.Model(&models.Location{}).
		Where("is_active = ? AND deleted_at IS NULL", true).
		Count(&zips).Error; err != nil {
		return stats, err
	}
	stats.ServiceableZips = int(zips)

	return stats, nil
}
