package services

import (
	"errors"
	"testing"

	"cleanbook-backend/models"

	"github.com/google/uuid"
)

func TestResolveOptionPrice(t *testing.T) {
	variants := []models.OptionVariant{
		{Name: "Small", Price: 0},
		{Name: "Large", Price: 10},
	}

	tests := []struct {
		name      string
		inputType string
		basePrice float64
		variants  []models.OptionVariant
		selected  string
		want      float64
	}{
		{"checkbox selected", models.InputTypeCheckbox, 15, nil, "selected", 15},
		{"checkbox not selected", models.InputTypeCheckbox, 15, nil, "", 0},
		{"checkbox other value", models.InputTypeCheckbox, 15, nil, "yes", 0},
		{"dropdown matching variant", models.InputTypeDropdown, 0, variants, "Large", 10},
		{"dropdown zero-price variant", models.InputTypeDropdown, 0, variants, "Small", 0},
		{"dropdown no match", models.InputTypeDropdown, 0, variants, "Medium", 0},
		{"radio matching variant", models.InputTypeRadio, 0, variants, "Large", 10},
		{"radio empty value", models.InputTypeRadio, 0, variants, "", 0},
		{"number quantity", models.InputTypeNumber, 5, nil, "3", 15},
		{"number negative quantity", models.InputTypeNumber, 5, nil, "-2", 0},
		{"number zero", models.InputTypeNumber, 5, nil, "0", 0},
		{"number garbage", models.InputTypeNumber, 5, nil, "abc", 0},
		{"text non-empty", models.InputTypeText, 8, nil, "ground floor", 8},
		{"text empty", models.InputTypeText, 8, nil, "", 0},
		{"textarea non-empty", models.InputTypeTextarea, 12, nil, "please bring supplies", 12},
		{"whitespace-only value", models.InputTypeText, 8, nil, "   ", 0},
		{"unknown input type", "slider", 20, nil, "5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOptionPrice(tt.inputType, tt.basePrice, tt.variants, tt.selected)
			if got != tt.want {
				t.Errorf("ResolveOptionPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeQuote(t *testing.T) {
	checkboxID := uuid.New()
	dropdownID := uuid.New()
	numberID := uuid.New()

	service := &models.Service{
		ID:        uuid.New(),
		Name:      "Deep Cleaning",
		BasePrice: 100,
		IsActive:  true,
	}
	subServices := []models.SubService{
		{ID: checkboxID, Name: "Inside fridge", InputType: models.InputTypeCheckbox, BasePrice: 15, IsActive: true},
		{ID: dropdownID, Name: "Home size", InputType: models.InputTypeDropdown, IsActive: true, Variants: []models.OptionVariant{
			{Name: "1 bedroom", Price: 0},
			{Name: "3 bedrooms", Price: 40},
		}},
		{ID: numberID, Name: "Extra rooms", InputType: models.InputTypeNumber, BasePrice: 20, IsActive: true},
	}
	selections := map[uuid.UUID]string{
		checkboxID: "selected",
		dropdownID: "3 bedrooms",
		numberID:   "2",
	}
	location := &models.Location{
		Zip:             "10001",
		PriceAdjustment: -10,
		ServiceFee:      5,
		IsActive:        true,
	}

	quote, err := ComputeQuote(service, subServices, selections, location)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}

	// 100 + 15 + 40 + 40 - 10 + 5
	if quote.Total != 190 {
		t.Errorf("Total = %v, want 190", quote.Total)
	}
	if !quote.LocationApplied {
		t.Error("LocationApplied = false, want true")
	}
	if len(quote.Options) != 3 {
		t.Errorf("len(Options) = %d, want 3", len(quote.Options))
	}

	// Recomputing with identical inputs yields the same total
	again, err := ComputeQuote(service, subServices, selections, location)
	if err != nil {
		t.Fatalf("ComputeQuote (second run): %v", err)
	}
	if again.Total != quote.Total {
		t.Errorf("recomputed total = %v, want %v", again.Total, quote.Total)
	}
}

func TestComputeQuoteInactiveLocation(t *testing.T) {
	service := &models.Service{ID: uuid.New(), Name: "Basic", BasePrice: 50, IsActive: true}
	location := &models.Location{Zip: "99999", PriceAdjustment: 25, ServiceFee: 10, IsActive: false}

	quote, err := ComputeQuote(service, nil, nil, location)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	if quote.Total != 50 {
		t.Errorf("Total = %v, want 50 (inactive location must contribute nothing)", quote.Total)
	}
	if quote.LocationApplied {
		t.Error("LocationApplied = true for inactive location")
	}
}

func TestComputeQuoteNoLocation(t *testing.T) {
	service := &models.Service{ID: uuid.New(), Name: "Basic", BasePrice: 50, IsActive: true}

	quote, err := ComputeQuote(service, nil, nil, nil)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	if quote.Total != 50 {
		t.Errorf("Total = %v, want 50", quote.Total)
	}
	if quote.LocationApplied {
		t.Error("LocationApplied = true with no location")
	}
}

func TestComputeQuoteClampsAtZero(t *testing.T) {
	service := &models.Service{ID: uuid.New(), Name: "Mini", BasePrice: 10, IsActive: true}
	location := &models.Location{Zip: "00000", PriceAdjustment: -50, IsActive: true}

	quote, err := ComputeQuote(service, nil, nil, location)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	if quote.Total != 0 {
		t.Errorf("Total = %v, want 0 (clamped)", quote.Total)
	}
}

func TestComputeQuoteInvalidService(t *testing.T) {
	if _, err := ComputeQuote(nil, nil, nil, nil); !errors.Is(err, ErrInvalidService) {
		t.Errorf("nil service: err = %v, want ErrInvalidService", err)
	}

	inactive := &models.Service{ID: uuid.New(), Name: "Retired", BasePrice: 70, IsActive: false}
	if _, err := ComputeQuote(inactive, nil, nil, nil); !errors.Is(err, ErrInvalidService) {
		t.Errorf("inactive service: err = %v, want ErrInvalidService", err)
	}
}

func TestComputeQuoteSkipsInactiveSubService(t *testing.T) {
	subID := uuid.New()
	service := &models.Service{ID: uuid.New(), Name: "Basic", BasePrice: 50, IsActive: true}
	subServices := []models.SubService{
		{ID: subID, Name: "Retired add-on", InputType: models.InputTypeCheckbox, BasePrice: 30, IsActive: false},
	}

	quote, err := ComputeQuote(service, subServices, map[uuid.UUID]string{subID: "selected"}, nil)
	if err != nil {
		t.Fatalf("ComputeQuote: %v", err)
	}
	if quote.Total != 50 {
		t.Errorf("Total = %v, want 50 (inactive sub-service must contribute nothing)", quote.Total)
	}
	if len(quote.Options) != 0 {
		t.Errorf("len(Options) = %d, want 0", len(quote.Options))
	}
}
