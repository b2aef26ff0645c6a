package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a serviceable area keyed by ZIP code. Its price adjustment
// (signed) and service fee (non-negative) are added to booking totals for
// that area. Only active locations affect pricing.
type Location struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Country string
	City    string
	Area    string
	Zip     string `gorm:"uniqueIndex;not null"`

	PriceAdjustment float64 `gorm:"type:decimal(10,2);default:0.0"`
	ServiceFee      float64 `gorm:"type:decimal(10,2);default:0.0"`
	IsActive        bool    `gorm:"default:true"`

	gorm.Model
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
