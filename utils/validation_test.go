package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+4915112345678", true},
		{"+1 (555) 123-4567", true},
		{"015112345678", false}, // leading zero
		{"+49 151 1234 5678", true},
		{"12345", true},
		{"", false},
		{"abc", false},
		{"+", false},
		{"+123456789012345678", false}, // too long
	}
	for _, tt := range tests {
		if got := ValidatePhone(tt.phone); got != tt.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidateZip(t *testing.T) {
	tests := []struct {
		zip  string
		want bool
	}{
		{"10115", true},
		{"90210", true},
		{"SW1A 1AA", true},
		{"K1A 0B1", true},
		{"  10115  ", true}, // trimmed before matching
		{"12", false},       // too short
		{"-1234", false},    // cannot start with a dash
		{"", false},
		{"12345678901", false}, // too long
	}
	for _, tt := range tests {
		if got := ValidateZip(tt.zip); got != tt.want {
			t.Errorf("ValidateZip(%q) = %v, want %v", tt.zip, got, tt.want)
		}
	}
}

func TestNormalizeZip(t *testing.T) {
	if got := NormalizeZip("  sw1a 1aa "); got != "SW1A 1AA" {
		t.Errorf("NormalizeZip = %q, want SW1A 1AA", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail = %q, want jane.doe@example.com", got)
	}
}
