package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Input types a sub-service can expose on the booking form. Pricing depends
// entirely on the input type; see services.ResolveOptionPrice.
const (
	InputTypeText     = "text"
	InputTypeTextarea = "textarea"
	InputTypeNumber   = "number"
	InputTypeDropdown = "dropdown"
	InputTypeCheckbox = "checkbox"
	InputTypeRadio    = "radio"
)

// SubService is an optional add-on exposed on the booking form, owned
// independently of the services that reference it.
type SubService struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	InputType   string  `gorm:"type:varchar(20);not null"`
	BasePrice   float64 `gorm:"type:decimal(10,2);default:0.0"`
	Required    bool    `gorm:"default:false"`
	IsActive    bool    `gorm:"default:true"`

	// Ordered variants for dropdown/checkbox/radio types; empty otherwise.
	Variants []OptionVariant `gorm:"foreignKey:SubServiceID"`

	gorm.Model
}

// OptionVariant is a named choice within a dropdown/radio sub-service,
// carrying its own price override.
type OptionVariant struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	SubServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null"`
	Price        float64   `gorm:"type:decimal(10,2);default:0.0"`
	Position     int       `gorm:"default:0"`
}

func ValidInputType(t string) bool {
	switch t {
	case InputTypeText, InputTypeTextarea, InputTypeNumber,
		InputTypeDropdown, InputTypeCheckbox, InputTypeRadio:
		return true
	}
	return false
}

func (s *SubService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (v *OptionVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
