package models_test

import (
	"testing"

	"github.com/feijonts/aps-5-api/internal/models"
)

func TestUserUpdateKey(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantKey string
		wantOK  bool
	}{
		{"Name Field", "name", "name", true},
		{"TaxID Field", "taxId", "tax_id", true},
		{"BirthDate Field", "birthDate", "birth_date", true},
		{"Unknown Field", "unknown", "", false},
		{"Stored Key Not Accepted", "tax_id", "", false},
		{"Empty Field", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := models.UserUpdateKey(tt.field)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("UserUpdateKey(%q) = (%q, %v), want (%q, %v)", tt.field, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}

func TestBikeUpdateKey(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		wantKey string
		wantOK  bool
	}{
		{"Brand Field", "brand", "brand", true},
		{"Model Field", "model", "model", true},
		{"City Field", "city", "city", true},
		{"Status Field", "status", "status", true},
		{"Loan Not Updatable", "loan", "", false},
		{"Unknown Field", "color", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := models.BikeUpdateKey(tt.field)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("BikeUpdateKey(%q) = (%q, %v), want (%q, %v)", tt.field, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}
