package controllers

import (
	"fmt"
	"net/http"
	"time"

	"cleanbook-backend/config"
	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpcomingBooking struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"clientName"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"` // e.g. "Today", "Tomorrow", "3 days"
	Time        string  `json:"time"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
}

type RecentClient struct {
	Name        string  `json:"name"`
	Service     string  `json:"service"`
	BookingDate string  `json:"bookingDate"` // e.g. "Today", "Yesterday"
	Spent       float64 `json:"spent"`
}

func GetDashboardOverview(c *gin.Context) {
	// Total Clients
	var totalClients int64
	config.DB.Model(&models.Client{}).Where("deleted_at IS NULL").Count(&totalClients)

	// This Month's Revenue (completed bookings only)
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Booking{}).
		Where("status = ? AND booking_date >= ?", models.BookingStatusCompleted, firstOfMonth).
		Select("COALESCE(SUM(total_price), 0)").Scan(&monthlyRevenue)

	// Booking counts
	var totalBookings int64
	config.DB.Model(&models.Booking{}).Count(&totalBookings)

	var pendingBookings int64
	config.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)

	// Upcoming bookings (next 7 days)
	var upcoming []UpcomingBooking
	today := utils.BeginningOfDay(now)
	weekAhead := today.AddDate(0, 0, 7)

	var bookings []models.Booking
	config.DB.Where("booking_date >= ? AND booking_date < ? AND status IN ?",
		today, weekAhead,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Order("booking_date ASC").Limit(10).Find(&bookings)

	for _, booking := range bookings {
		clientName := ""
		if booking.ClientID != nil {
			var client models.Client
			if err := config.DB.First(&client, "id = ?", *booking.ClientID).Error; err == nil {
				clientName = client.Name
			}
		}

		daysUntil := utils.DaysBetween(now, booking.BookingDate)
		var label string
		switch daysUntil {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysUntil)
		}

		upcoming = append(upcoming, UpcomingBooking{
			ID:          booking.ID.String(),
			ClientName:  clientName,
			ServiceName: booking.ServiceName,
			Date:        label,
			Time:        booking.BookingDate.Format("15:04"),
			Total:       booking.TotalPrice,
			Status:      booking.Status,
		})
	}

	// Recent clients (last 3 distinct clients by booking)
	var recentClients []RecentClient
	rows, err := config.DB.Raw(`
    SELECT c.name, c.total_spent, b.service_name, b.booking_date
    FROM bookings b
    JOIN clients c ON c.id = b.client_id
    WHERE c.deleted_at IS NULL
    ORDER BY b.created_at DESC
`).Rows()
	if err == nil {
		defer rows.Close()
		clientMap := make(map[string]bool)
		count := 0
		for rows.Next() {
			var name, serviceName string
			var totalSpent float64
			var bookingDate time.Time
			if err := rows.Scan(&name, &totalSpent, &serviceName, &bookingDate); err != nil {
				continue
			}
			if clientMap[name] {
				continue
			}
			daysAgo := int(time.Since(bookingDate).Hours() / 24)
			var dateLabel string
			switch daysAgo {
			case 0:
				dateLabel = "Today"
			case 1:
				dateLabel = "Yesterday"
			default:
				dateLabel = fmt.Sprintf("%d days ago", daysAgo)
			}
			recentClients = append(recentClients, RecentClient{
				Name:        name,
				Service:     serviceName,
				BookingDate: dateLabel,
				Spent:       totalSpent,
			})
			clientMap[name] = true
			count++
			if count >= 3 {
				break
			}
		}
	}

	// Compose response
	response := gin.H{
		"totalClients":     totalClients,
		"monthlyRevenue":   monthlyRevenue,
		"totalBookings":    totalBookings,
		"pendingBookings":  pendingBookings,
		"upcomingBookings": upcoming,
		"recentClients":    recentClients,
	}

	c.JSON(http.StatusOK, response)
}
