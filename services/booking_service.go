// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientDetails is the contact block of a public booking submission.
// Clients are keyed by email: a submission with a known email updates that
// client, a new email creates one.
type ClientDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// BookingSubmission is a validated public booking request.
type BookingSubmission struct {
	ServiceID   uuid.UUID
	Selections  map[uuid.UUID]string
	Zip         string
	BookingDate time.Time
	Notes       string
	Client      ClientDetails
}

// BookingService orchestrates booking creation: price the submission, upsert
// the client, persist the booking with its price snapshots, and update the
// client aggregates, all in one transaction. The confirmation notification
// runs after commit and is allowed to fail on its own.
type BookingService struct {
	db       *gorm.DB
	pricing  *PricingService
	stats    *ClientStatsService
	notifier *NotificationService
}

func NewBookingService(db *gorm.DB, pricing *PricingService, stats *ClientStatsService, notifier *NotificationService) *BookingService {
	return &BookingService{db: db, pricing: pricing, stats: stats, notifier: notifier}
}

// Create prices and persists a booking. ErrInvalidService surfaces before
// any row is written. The returned booking carries the stored snapshots.
func (s *BookingService) Create(sub BookingSubmission) (*models.Booking, error) {
	quote, err := s.pricing.Quote(sub.ServiceID, sub.Selections, sub.Zip)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	var client models.Client

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.upsertClient(tx, sub.Client, &client); err != nil {
			return err
		}

		booking = models.Booking{
			ClientID:           &client.ID,
			ServiceID:          quote.ServiceID,
			ServiceName:        quote.ServiceName,
			ServicePrice:       quote.BasePrice,
			Zip:                utils.NormalizeZip(sub.Zip),
			LocationAdjustment: quote.LocationAdjustment,
			LocationFee:        quote.LocationFee,
			BookingDate:        sub.BookingDate,
			TotalPrice:         quote.Total,
			Status:             models.BookingStatusPending,
			Notes:              sub.Notes,
		}
		for _, opt := range quote.Options {
			booking.Options = append(booking.Options, models.BookingOption{
				SubServiceID:   opt.SubServiceID,
				Title:          opt.Title,
				InputType:      opt.InputType,
				Value:          opt.Value,
				PriceIncrement: opt.Increment,
			})
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		return s.stats.AddBooking(tx, client.ID, quote.Total, sub.BookingDate)
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, fire-and-forget: a delivery failure is logged by the
	// notifier and never fails the booking.
	if s.notifier != nil {
		go s.notifier.SendBookingConfirmation(booking, client)
	}

	return &booking, nil
}

func (s *BookingService) upsertClient(tx *gorm.DB, details ClientDetails, client *models.Client) error {
	email := utils.NormalizeEmail(details.Email)

	err := tx.Where("email = ?", email).First(client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		*client = models.Client{
			Name:     details.Name,
			Email:    email,
			Phone:    details.Phone,
			Address:  details.Address,
			IsActive: true,
		}
		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load client: %w", err)
	}

	// Refresh contact details from the latest submission.
	updates := map[string]interface{}{}
	if details.Name != "" && details.Name != client.Name {
		updates["name"] = details.Name
		client.Name = details.Name
	}
	if details.Phone != "" && details.Phone != client.Phone {
		updates["phone"] = details.Phone
		client.Phone = details.Phone
	}
	if details.Address != "" && details.Address != client.Address {
		updates["address"] = details.Address
		client.Address = details.Address
	}
	if len(updates) > 0 {
		if err := tx.Model(client).Updates(updates).Error; err != nil {
			return fmt.Errorf("update client: %w", err)
		}
	}
	return nil
}
