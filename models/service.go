package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	BasePrice   float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // in minutes
	Category    string  `gorm:"default:'General'"`
	IsActive    bool    `gorm:"default:true"`

	SubServices []ServiceSubService `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

// ServiceSubService links a service to a sub-service option group. A
// sub-service may be attached to any number of services; Position orders
// the option groups on the booking form.
type ServiceSubService struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ServiceID    uuid.UUID `gorm:"type:uuid;index;not null"`
	SubServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Position     int       `gorm:"default:0"`

	SubService SubService `gorm:"foreignKey:SubServiceID"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *ServiceSubService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
