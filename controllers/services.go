package controllers

import (
	"cleanbook-backend/services"

	"gorm.io/gorm"
)

// Shared service instances. The stats service keeps per-client locks, so a
// single instance must be used for every code path that touches aggregates.
var (
	statsService        *services.ClientStatsService
	pricingService      *services.PricingService
	bookingService      *services.BookingService
	bulkService         *services.BulkActionService
	notificationService *services.NotificationService
)

// InitServices wires the domain services. Called once from main after the
// database connection is up.
func InitServices(db *gorm.DB) {
	statsService = services.NewClientStatsService(db)
	pricingService = services.NewPricingService(db)
	notificationService = services.NewNotificationService(db)
	bookingService = services.NewBookingService(db, pricingService, statsService, notificationService)
	bulkService = services.NewBulkActionService(db, statsService)
}

// StatsService exposes the shared aggregator so the scheduler reuses the
// same per-client locks as the request path.
func StatsService() *services.ClientStatsService {
	return statsService
}

// Notifier exposes the shared notification dispatcher for the scheduler.
func Notifier() *services.NotificationService {
	return notificationService
}
