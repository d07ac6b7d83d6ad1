package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Currency string `validate:"omitempty,iso4217"`
	Mode     string `validate:"omitempty,target_mode"`
	Status   string `validate:"omitempty,vendor_status"`
	RSVP     string `validate:"omitempty,rsvp_status"`
	Side     string `validate:"omitempty,guest_side"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate()

	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{"valid_currency", sample{Currency: "ILS"}, false},
		{"unknown_currency", sample{Currency: "XYZ"}, true},
		{"long_currency", sample{Currency: "EURO"}, true},
		{"mode_code", sample{Mode: "personal_pocket"}, false},
		{"mode_hebrew_label", sample{Mode: "נרוויח"}, false},
		{"mode_unknown", sample{Mode: "splurge"}, true},
		{"status_code", sample{Status: "committed"}, false},
		{"status_hebrew_label", sample{Status: "התחייב"}, false},
		{"status_unknown", sample{Status: "maybe"}, true},
		{"rsvp_valid", sample{RSVP: "declined"}, false},
		{"rsvp_invalid", sample{RSVP: "yes"}, true},
		{"side_valid", sample{Side: "groom"}, false},
		{"side_invalid", sample{Side: "left"}, true},
		{"all_empty", sample{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
