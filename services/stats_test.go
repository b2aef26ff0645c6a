package services

import (
	"errors"
	"testing"
	"time"

	"cleanbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Service{},
		&models.SubService{},
		&models.OptionVariant{},
		&models.ServiceSubService{},
		&models.Location{},
		&models.Booking{},
		&models.BookingOption{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, db *gorm.DB, email string) models.Client {
	t.Helper()
	client := models.Client{Name: "Test Client", Email: email, IsActive: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func seedBooking(t *testing.T, db *gorm.DB, clientID uuid.UUID, status string, total float64, date time.Time) models.Booking {
	t.Helper()
	booking := models.Booking{
		ClientID:     &clientID,
		ServiceID:    uuid.New(),
		ServiceName:  "Standard Cleaning",
		ServicePrice: total,
		BookingDate:  date,
		TotalPrice:   total,
		Status:       status,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func TestRecalculateCountsOnlyCompletedSpend(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	client := seedClient(t, db, "jane@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	seedBooking(t, db, client.ID, models.BookingStatusCompleted, 50, now.AddDate(0, 0, -10))
	seedBooking(t, db, client.ID, models.BookingStatusPending, 30, now.AddDate(0, 0, -5))
	seedBooking(t, db, client.ID, models.BookingStatusCanceled, 20, now.AddDate(0, 0, -1))

	if err := stats.Recalculate(client.ID); err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	var got models.Client
	if err := db.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}

	if got.TotalSpent != 50 {
		t.Errorf("TotalSpent = %v, want 50 (completed bookings only)", got.TotalSpent)
	}
	if got.BookingsCount != 3 {
		t.Errorf("BookingsCount = %d, want 3 (all statuses)", got.BookingsCount)
	}
	if got.LastBooking == nil {
		t.Fatal("LastBooking = nil, want latest booking date")
	}
	wantLast := now.AddDate(0, 0, -1)
	if !got.LastBooking.Equal(wantLast) {
		t.Errorf("LastBooking = %v, want %v", got.LastBooking, wantLast)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	client := seedClient(t, db, "sam@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	seedBooking(t, db, client.ID, models.BookingStatusCompleted, 120, now)
	seedBooking(t, db, client.ID, models.BookingStatusConfirmed, 80, now.AddDate(0, 0, 3))

	if err := stats.Recalculate(client.ID); err != nil {
		t.Fatalf("first Recalculate: %v", err)
	}
	var first models.Client
	if err := db.First(&first, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}

	if err := stats.Recalculate(client.ID); err != nil {
		t.Fatalf("second Recalculate: %v", err)
	}
	var second models.Client
	if err := db.First(&second, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}

	if first.TotalSpent != second.TotalSpent ||
		first.BookingsCount != second.BookingsCount ||
		!first.LastBooking.Equal(*second.LastBooking) {
		t.Errorf("second run changed aggregates: %+v vs %+v", first, second)
	}
}

func TestRecalculateUnknownClient(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)

	err := stats.Recalculate(uuid.New())
	if !errors.Is(err, ErrClientNotFound) {
		t.Errorf("err = %v, want ErrClientNotFound", err)
	}
}

func TestAddBookingIncrements(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	client := seedClient(t, db, "ann@example.com")

	first := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	if err := stats.AddBooking(db, client.ID, 75, first); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}
	if err := stats.AddBooking(db, client.ID, 25, first.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}

	var got models.Client
	if err := db.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if got.TotalSpent != 100 {
		t.Errorf("TotalSpent = %v, want 100", got.TotalSpent)
	}
	if got.BookingsCount != 2 {
		t.Errorf("BookingsCount = %d, want 2", got.BookingsCount)
	}
	if got.LastBooking == nil || !got.LastBooking.Equal(first.AddDate(0, 0, 7)) {
		t.Errorf("LastBooking = %v, want %v", got.LastBooking, first.AddDate(0, 0, 7))
	}

	// An older booking must not move last_booking backwards
	if err := stats.AddBooking(db, client.ID, 10, first.AddDate(0, 0, -30)); err != nil {
		t.Fatalf("AddBooking: %v", err)
	}
	if err := db.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if !got.LastBooking.Equal(first.AddDate(0, 0, 7)) {
		t.Errorf("LastBooking moved backwards to %v", got.LastBooking)
	}
}

func TestAddBookingUnknownClient(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)

	err := stats.AddBooking(db, uuid.New(), 10, time.Now())
	if !errors.Is(err, ErrClientNotFound) {
		t.Errorf("err = %v, want ErrClientNotFound", err)
	}
}

func TestRecalculateAll(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)

	a := seedClient(t, db, "a@example.com")
	b := seedClient(t, db, "b@example.com")
	now := time.Now().UTC().Truncate(time.Second)
	seedBooking(t, db, a.ID, models.BookingStatusCompleted, 40, now)
	seedBooking(t, db, b.ID, models.BookingStatusPending, 60, now)

	updated, err := stats.RecalculateAll()
	if err != nil {
		t.Fatalf("RecalculateAll: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	var gotA, gotB models.Client
	db.First(&gotA, "id = ?", a.ID)
	db.First(&gotB, "id = ?", b.ID)
	if gotA.TotalSpent != 40 || gotA.BookingsCount != 1 {
		t.Errorf("client a aggregates = (%v, %d), want (40, 1)", gotA.TotalSpent, gotA.BookingsCount)
	}
	if gotB.TotalSpent != 0 || gotB.BookingsCount != 1 {
		t.Errorf("client b aggregates = (%v, %d), want (0, 1)", gotB.TotalSpent, gotB.BookingsCount)
	}
}
