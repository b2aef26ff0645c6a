package models

import (
	"time"

	"cleanbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCanceled  = "canceled"
)

// Booking is one reservation. Pricing fields are snapshots taken at creation
// time; later changes to the catalog or locations never alter them.
type Booking struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	ClientID *uuid.UUID `gorm:"type:uuid;index"`

	// Short human-readable reference quoted in notifications.
	Reference string `gorm:"type:varchar(12);uniqueIndex"`

	ServiceID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName  string    `gorm:"not null"`
	ServicePrice float64   `gorm:"type:decimal(10,2);not null"`

	Zip                string
	LocationAdjustment float64 `gorm:"type:decimal(10,2);default:0.0"`
	LocationFee        float64 `gorm:"type:decimal(10,2);default:0.0"`

	BookingDate time.Time `gorm:"index;not null"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null"`
	Status      string    `gorm:"type:varchar(20);index;default:'pending'"`
	Notes       string

	// Staff member assigned to carry out the cleaning, if any.
	AssignedUserID *uuid.UUID `gorm:"type:uuid;index"`

	Options []BookingOption `gorm:"foreignKey:BookingID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingOption records one submitted sub-service value together with the
// price increment it resolved to at booking time.
type BookingOption struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID      uuid.UUID `gorm:"type:uuid;index;not null"`
	SubServiceID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Title          string    `gorm:"not null"`
	InputType      string    `gorm:"type:varchar(20)"`
	Value          string
	PriceIncrement float64 `gorm:"type:decimal(10,2);default:0.0"`
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed,
		BookingStatusCompleted, BookingStatusCanceled:
		return true
	}
	return false
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Reference == "" {
		b.Reference = "BK-" + utils.GenerateRandomString(8)
	}
	return
}

func (o *BookingOption) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
