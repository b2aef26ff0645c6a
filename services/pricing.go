// services/pricing.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cleanbook-backend/models"
	"cleanbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidService is returned when a quoted service id does not resolve to
// an active, bookable service. It is fatal to the whole submission.
var ErrInvalidService = errors.New("invalid or inactive service")

// OptionSelected is the sentinel value a checked checkbox submits.
const OptionSelected = "selected"

// ResolveOptionPrice computes the price increment a single sub-service
// contributes, based entirely on its input type:
//
//   - checkbox: base price when the "selected" sentinel was submitted
//   - radio/dropdown: the price of the variant whose name matches exactly
//   - number: base price multiplied by the submitted quantity (min 0)
//   - text/textarea: flat base price for any non-empty value
//
// An empty value or an unknown input type contributes 0 and never errors.
// Requiredness is a form-validation concern and is not checked here.
func ResolveOptionPrice(inputType string, basePrice float64, variants []models.OptionVariant, selected string) float64 {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return 0
	}

	switch inputType {
	case models.InputTypeCheckbox:
		if selected == OptionSelected {
			return basePrice
		}
		return 0
	case models.InputTypeRadio, models.InputTypeDropdown:
		for _, v := range variants {
			if v.Name == selected {
				return v.Price
			}
		}
		return 0
	case models.InputTypeNumber:
		qty, err := strconv.Atoi(selected)
		if err != nil || qty <= 0 {
			return 0
		}
		return basePrice * float64(qty)
	case models.InputTypeText, models.InputTypeTextarea:
		return basePrice
	default:
		return 0
	}
}

// OptionBreakdown is one resolved sub-service line in a quote.
type OptionBreakdown struct {
	SubServiceID uuid.UUID `json:"subServiceId"`
	Title        string    `json:"title"`
	InputType    string    `json:"inputType"`
	Value        string    `json:"value"`
	Increment    float64   `json:"increment"`
}

// PriceQuote is the result of a price calculation. Its fields are what gets
// snapshotted onto a booking at creation time.
type PriceQuote struct {
	ServiceID          uuid.UUID         `json:"serviceId"`
	ServiceName        string            `json:"serviceName"`
	BasePrice          float64           `json:"basePrice"`
	Options            []OptionBreakdown `json:"options"`
	LocationAdjustment float64           `json:"locationAdjustment"`
	LocationFee        float64           `json:"locationFee"`
	LocationApplied    bool              `json:"locationApplied"`
	Total              float64           `json:"total"`
}

// ComputeQuote composes the final chargeable total from already-loaded
// entities: service base price + sub-service increments + location
// adjustment and fee, clamped at zero. It is deterministic and performs no
// I/O. A nil or inactive location contributes nothing; an unknown or
// inactive service fails with ErrInvalidService.
func ComputeQuote(service *models.Service, subServices []models.SubService, selections map[uuid.UUID]string, location *models.Location) (*PriceQuote, error) {
	if service == nil || !service.IsActive {
		return nil, ErrInvalidService
	}

	quote := &PriceQuote{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		BasePrice:   service.BasePrice,
	}
	total := service.BasePrice

	for _, ss := range subServices {
		if !ss.IsActive {
			continue
		}
		value, ok := selections[ss.ID]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		increment := ResolveOptionPrice(ss.InputType, ss.BasePrice, ss.Variants, value)
		quote.Options = append(quote.Options, OptionBreakdown{
			SubServiceID: ss.ID,
			Title:        ss.Name,
			InputType:    ss.InputType,
			Value:        strings.TrimSpace(value),
			Increment:    increment,
		})
		total += increment
	}

	if location != nil && location.IsActive {
		quote.LocationAdjustment = location.PriceAdjustment
		quote.LocationFee = location.ServiceFee
		quote.LocationApplied = true
		total += location.PriceAdjustment + location.ServiceFee
	}

	if total < 0 {
		total = 0
	}
	quote.Total = total

	return quote, nil
}

// PricingService loads catalog and location data and produces quotes.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// Quote resolves the service, the submitted sub-services and the ZIP
// location, then computes the total. Sub-service ids that do not resolve are
// skipped with zero contribution; an unknown or inactive ZIP contributes
// zero adjustment and fee rather than blocking the quote.
func (s *PricingService) Quote(serviceID uuid.UUID, selections map[uuid.UUID]string, zip string) (*PriceQuote, error) {
	var service models.Service
	if err := s.db.Where("id = ? AND is_active = ?", serviceID, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidService
		}
		return nil, fmt.Errorf("load service: %w", err)
	}

	var subServices []models.SubService
	if len(selections) > 0 {
		ids := make([]uuid.UUID, 0, len(selections))
		for id := range selections {
			ids = append(ids, id)
		}
		if err := s.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).Where("id IN ?", ids).Find(&subServices).Error; err != nil {
			return nil, fmt.Errorf("load sub-services: %w", err)
		}
	}

	var location *models.Location
	if zip != "" {
		var loc models.Location
		err := s.db.Where("zip = ? AND is_active = ?", utils.NormalizeZip(zip), true).
			First(&loc).Error
		switch {
		case err == nil:
			location = &loc
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Unknown or inactive area: proceed with zero adjustment/fee.
		default:
			return nil, fmt.Errorf("load location: %w", err)
		}
	}

	return ComputeQuote(&service, subServices, selections, location)
}
