package services

import (
	"errors"
	"testing"
	"time"

	"cleanbook-backend/models"

	"github.com/google/uuid"
)

func TestBookingCreateSnapshotsAndStats(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	svc := NewBookingService(db, NewPricingService(db), stats, nil)

	service := models.Service{Name: "Deep Cleaning", BasePrice: 100, IsActive: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	oven := models.SubService{
		Name:      "Oven cleaning",
		InputType: models.InputTypeCheckbox,
		BasePrice: 25,
		IsActive:  true,
	}
	if err := db.Create(&oven).Error; err != nil {
		t.Fatalf("seed sub-service: %v", err)
	}
	location := models.Location{Zip: "10115", PriceAdjustment: 10, ServiceFee: 5, IsActive: true}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}

	date := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	booking, err := svc.Create(BookingSubmission{
		ServiceID:   service.ID,
		Selections:  map[uuid.UUID]string{oven.ID: OptionSelected},
		Zip:         "10115",
		BookingDate: date,
		Client: ClientDetails{
			Name:  "Mia Berger",
			Email: "Mia.Berger@Example.com",
			Phone: "+4915112345678",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if booking.TotalPrice != 140 {
		t.Errorf("TotalPrice = %v, want 140 (100 + 25 + 10 + 5)", booking.TotalPrice)
	}
	if booking.ServicePrice != 100 || booking.ServiceName != "Deep Cleaning" {
		t.Errorf("service snapshot = (%q, %v), want (Deep Cleaning, 100)", booking.ServiceName, booking.ServicePrice)
	}
	if booking.LocationAdjustment != 10 || booking.LocationFee != 5 {
		t.Errorf("location snapshot = (%v, %v), want (10, 5)", booking.LocationAdjustment, booking.LocationFee)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("Status = %s, want pending", booking.Status)
	}
	if len(booking.Options) != 1 || booking.Options[0].PriceIncrement != 25 {
		t.Fatalf("Options = %+v, want one row with increment 25", booking.Options)
	}

	// Client upserted with normalized email and aggregates bumped.
	var client models.Client
	if err := db.First(&client, "email = ?", "mia.berger@example.com").Error; err != nil {
		t.Fatalf("load client: %v", err)
	}
	if client.TotalSpent != 140 {
		t.Errorf("TotalSpent = %v, want 140 (incremental cache counts the new booking)", client.TotalSpent)
	}
	if client.BookingsCount != 1 {
		t.Errorf("BookingsCount = %d, want 1", client.BookingsCount)
	}
	if client.LastBooking == nil || !client.LastBooking.Equal(date) {
		t.Errorf("LastBooking = %v, want %v", client.LastBooking, date)
	}
}

func TestBookingCreateReusesClientByEmail(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	svc := NewBookingService(db, NewPricingService(db), stats, nil)

	service := models.Service{Name: "Window Cleaning", BasePrice: 60, IsActive: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	submit := func(name, phone string, date time.Time) *models.Booking {
		booking, err := svc.Create(BookingSubmission{
			ServiceID:   service.ID,
			BookingDate: date,
			Client:      ClientDetails{Name: name, Email: "repeat@example.com", Phone: phone},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return booking
	}

	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	first := submit("Lena Vogt", "+4915100000001", base)
	second := submit("Lena Vogt-Schmidt", "+4915100000002", base.AddDate(0, 0, 14))

	if *first.ClientID != *second.ClientID {
		t.Fatalf("bookings attached to different clients: %s vs %s", first.ClientID, second.ClientID)
	}

	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 1 {
		t.Errorf("client rows = %d, want 1", count)
	}

	var client models.Client
	if err := db.First(&client, "id = ?", *first.ClientID).Error; err != nil {
		t.Fatalf("load client: %v", err)
	}
	if client.Name != "Lena Vogt-Schmidt" || client.Phone != "+4915100000002" {
		t.Errorf("contact details not refreshed: %q / %q", client.Name, client.Phone)
	}
	if client.BookingsCount != 2 {
		t.Errorf("BookingsCount = %d, want 2", client.BookingsCount)
	}
}

func TestBookingCreateInvalidService(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db, NewPricingService(db), NewClientStatsService(db), nil)

	_, err := svc.Create(BookingSubmission{
		ServiceID:   uuid.New(),
		BookingDate: time.Now().AddDate(0, 0, 1),
		Client:      ClientDetails{Name: "Ghost", Email: "ghost@example.com"},
	})
	if !errors.Is(err, ErrInvalidService) {
		t.Fatalf("err = %v, want ErrInvalidService", err)
	}

	// Rejection happens before persistence: no client, no booking.
	var clients, bookings int64
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Booking{}).Count(&bookings)
	if clients != 0 || bookings != 0 {
		t.Errorf("rows written on rejection: %d clients, %d bookings", clients, bookings)
	}
}
