package services

import (
	"errors"
	"testing"
	"time"

	"cleanbook-backend/models"

	"github.com/google/uuid"
)

func TestBulkApplyPartialFailure(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	bulk := NewBulkActionService(db, stats)
	client := seedClient(t, db, "bulk@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	b1 := seedBooking(t, db, client.ID, models.BookingStatusPending, 50, now)
	b2 := seedBooking(t, db, client.ID, models.BookingStatusPending, 60, now)
	b3 := seedBooking(t, db, client.ID, models.BookingStatusPending, 70, now)

	authorize := func(b models.Booking) error {
		if b.ID == b2.ID {
			return errors.New("not assigned to this booking")
		}
		return nil
	}

	result, err := bulk.Apply(ActionConfirm, []uuid.UUID{b1.ID, b2.ID, b3.ID}, authorize)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if result.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", result.SuccessCount)
	}
	if result.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.ErrorCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].BookingID != b2.ID {
		t.Fatalf("Errors = %+v, want single entry for %s", result.Errors, b2.ID)
	}

	// Reload each booking into a fresh struct; reusing one would carry the
	// previous primary key into the next query's conditions.
	for _, want := range []struct {
		id     uuid.UUID
		status string
	}{
		{b1.ID, models.BookingStatusConfirmed},
		{b2.ID, models.BookingStatusPending},
		{b3.ID, models.BookingStatusConfirmed},
	} {
		var got models.Booking
		if err := db.First(&got, "id = ?", want.id).Error; err != nil {
			t.Fatalf("reload booking %s: %v", want.id, err)
		}
		if got.Status != want.status {
			t.Errorf("booking %s status = %s, want %s", want.id, got.Status, want.status)
		}
	}
}

func TestBulkApplyInvalidAction(t *testing.T) {
	db := openTestDB(t)
	bulk := NewBulkActionService(db, NewClientStatsService(db))
	client := seedClient(t, db, "invalid@example.com")
	booking := seedBooking(t, db, client.ID, models.BookingStatusPending, 50, time.Now())

	_, err := bulk.Apply("archive", []uuid.UUID{booking.ID}, nil)
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}

	var got models.Booking
	db.First(&got, "id = ?", booking.ID)
	if got.Status != models.BookingStatusPending {
		t.Errorf("booking mutated by rejected batch: status = %s", got.Status)
	}
}

func TestBulkApplyEmptySelection(t *testing.T) {
	db := openTestDB(t)
	bulk := NewBulkActionService(db, NewClientStatsService(db))

	_, err := bulk.Apply(ActionConfirm, nil, nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestBulkApplyMissingBooking(t *testing.T) {
	db := openTestDB(t)
	bulk := NewBulkActionService(db, NewClientStatsService(db))

	missing := uuid.New()
	result, err := bulk.Apply(ActionCancel, []uuid.UUID{missing}, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.SuccessCount != 0 || result.ErrorCount != 1 {
		t.Fatalf("result = %+v, want 0 successes / 1 error", result)
	}
	if result.Errors[0].BookingID != missing {
		t.Errorf("error for %s, want %s", result.Errors[0].BookingID, missing)
	}
}

func TestBulkDeleteRemovesBookingAndOptions(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	bulk := NewBulkActionService(db, stats)
	client := seedClient(t, db, "delete@example.com")
	booking := seedBooking(t, db, client.ID, models.BookingStatusConfirmed, 90, time.Now())

	option := models.BookingOption{
		BookingID:      booking.ID,
		SubServiceID:   uuid.New(),
		Title:          "Deep oven clean",
		InputType:      models.InputTypeCheckbox,
		Value:          "selected",
		PriceIncrement: 25,
	}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("seed option: %v", err)
	}

	result, err := bulk.Apply(ActionDelete, []uuid.UUID{booking.ID}, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.SuccessCount != 1 || result.ErrorCount != 0 {
		t.Fatalf("result = %+v, want clean success", result)
	}

	var bookings int64
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&bookings)
	if bookings != 0 {
		t.Error("booking row still present after delete")
	}
	var options int64
	db.Model(&models.BookingOption{}).Where("booking_id = ?", booking.ID).Count(&options)
	if options != 0 {
		t.Error("booking options still present after delete")
	}
}

func TestBulkCompleteRecomputesClientStats(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	bulk := NewBulkActionService(db, stats)
	client := seedClient(t, db, "complete@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	booking := seedBooking(t, db, client.ID, models.BookingStatusConfirmed, 150, now)

	result, err := bulk.Apply(ActionComplete, []uuid.UUID{booking.ID}, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.ErrorCount != 0 {
		t.Fatalf("unexpected item errors: %+v", result.Errors)
	}

	var got models.Client
	if err := db.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if got.TotalSpent != 150 {
		t.Errorf("TotalSpent = %v, want 150 after completion", got.TotalSpent)
	}
	if got.BookingsCount != 1 {
		t.Errorf("BookingsCount = %d, want 1", got.BookingsCount)
	}
}

func TestBulkDeleteCompletedRecomputesClientStats(t *testing.T) {
	db := openTestDB(t)
	stats := NewClientStatsService(db)
	bulk := NewBulkActionService(db, stats)
	client := seedClient(t, db, "revert@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	keep := seedBooking(t, db, client.ID, models.BookingStatusCompleted, 40, now.AddDate(0, 0, -3))
	drop := seedBooking(t, db, client.ID, models.BookingStatusCompleted, 60, now)
	if err := stats.Recalculate(client.ID); err != nil {
		t.Fatalf("seed Recalculate: %v", err)
	}

	result, err := bulk.Apply(ActionDelete, []uuid.UUID{drop.ID}, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.ErrorCount != 0 {
		t.Fatalf("unexpected item errors: %+v", result.Errors)
	}

	var got models.Client
	if err := db.First(&got, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if got.TotalSpent != 40 {
		t.Errorf("TotalSpent = %v, want 40 after deleting completed booking", got.TotalSpent)
	}
	if got.BookingsCount != 1 {
		t.Errorf("BookingsCount = %d, want 1", got.BookingsCount)
	}
	if got.LastBooking == nil || !got.LastBooking.Equal(keep.BookingDate) {
		t.Errorf("LastBooking = %v, want %v", got.LastBooking, keep.BookingDate)
	}
}
