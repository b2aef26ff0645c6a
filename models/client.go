package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name    string `gorm:"not null"`
	Email   string `gorm:"uniqueIndex;not null"`
	Phone   string
	Address string
	Notes   string

	// Denormalized aggregates over this client's bookings. TotalSpent counts
	// completed bookings only; BookingsCount counts every status. Maintained
	// by services.ClientStatsService, never edited directly.
	TotalSpent    float64 `gorm:"type:decimal(10,2);default:0.0"`
	BookingsCount int     `gorm:"default:0"`
	LastBooking   *time.Time

	IsActive bool `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
