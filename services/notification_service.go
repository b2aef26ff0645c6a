// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cleanbook-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const (
	NotificationTypeConfirmation = "confirmation"
	NotificationTypeReminder     = "reminder"
)

type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// SendBookingConfirmation messages the client after a booking was created.
// All failures are logged and recorded in the notification log; nothing here
// affects the booking itself.
func (s *NotificationService) SendBookingConfirmation(booking models.Booking, client models.Client) {
	var business models.Business
	if err := s.db.First(&business).Error; err != nil {
		log.Printf("Notification skipped, no business profile: %v", err)
		return
	}
	if !business.SMSNotifications && !business.WhatsAppNotifications {
		return
	}
	if client.Phone == "" {
		log.Printf("Notification skipped, client %s has no phone", client.ID)
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your %s booking (%s) on %s is received. Total: %.2f. We will confirm shortly. - %s",
		client.Name, booking.ServiceName, booking.Reference,
		booking.BookingDate.Format("Mon, 02 Jan 2006 15:04"),
		booking.TotalPrice, business.Name)

	s.send(business, client.Phone, message, NotificationTypeConfirmation, &booking.ID, &client.ID)
}

// SendBookingReminders messages clients whose bookings are due tomorrow.
// Invoked daily by the scheduler.
func (s *NotificationService) SendBookingReminders() {
	var business models.Business
	if err := s.db.First(&business).Error; err != nil {
		log.Printf("Reminders skipped, no business profile: %v", err)
		return
	}
	if !business.BookingReminders {
		return
	}

	tomorrowStart := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	tomorrowEnd := tomorrowStart.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := s.db.Where("status = ? AND booking_date >= ? AND booking_date < ?",
		models.BookingStatusConfirmed, tomorrowStart, tomorrowEnd).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if booking.ClientID == nil {
			continue
		}
		var client models.Client
		if err := s.db.First(&client, "id = ?", *booking.ClientID).Error; err != nil {
			log.Printf("Reminder skipped, client %s not found: %v", *booking.ClientID, err)
			continue
		}
		if client.Phone == "" {
			continue
		}

		message := fmt.Sprintf(
			"Hi %s, a reminder of your %s cleaning tomorrow at %s. - %s",
			client.Name, booking.ServiceName,
			booking.BookingDate.Format("15:04"), business.Name)

		s.send(business, client.Phone, message, NotificationTypeReminder, &booking.ID, &client.ID)
	}
}

func (s *NotificationService) send(business models.Business, phone, message, notifType string, bookingID, clientID *uuid.UUID) {
	// Prefer WhatsApp for E.164 numbers when the business has it enabled.
	channel := "sms"
	to := phone
	if business.WhatsAppNotifications && strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", phone)
	}

	notifLog := models.NotificationLog{
		BookingID:    bookingID,
		ClientID:     clientID,
		Type:         notifType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&notifLog).Error; err != nil {
		log.Printf("Failed to log notification: %v", err)
	}
}
