package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business holds the company profile and notification settings. A deployment
// serves a single cleaning business, so there is exactly one row.
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Address      string
	Phone        string
	Email        string
	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'"`

	SMSNotifications      bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	BookingReminders      bool `gorm:"default:true"`

	gorm.Model
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
