// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"

	"wedplan/internal/budget"
	"wedplan/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on the given instance.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("target_mode", validateTargetMode)
	_ = v.RegisterValidation("vendor_status", validateVendorStatus)
	_ = v.RegisterValidation("rsvp_status", validateRSVPStatus)
	_ = v.RegisterValidation("guest_side", validateGuestSide)
}

func validateISO4217(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 3 {
		return false
	}
	_, err := currency.ParseISO(s)
	return err == nil
}

// target_mode and vendor_status accept both the canonical value and the
// Hebrew UI label.
func validateTargetMode(fl validator.FieldLevel) bool {
	_, ok := budget.ParseTargetMode(fl.Field().String())
	return ok
}

func validateVendorStatus(fl validator.FieldLevel) bool {
	_, ok := budget.ParseVendorStatus(fl.Field().String())
	return ok
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	switch models.RSVPStatus(fl.Field().String()) {
	case models.RSVPPending, models.RSVPAccepted, models.RSVPDeclined:
		return true
	}
	return false
}

func validateGuestSide(fl validator.FieldLevel) bool {
	switch models.GuestSide(fl.Field().String()) {
	case models.GuestSideBride, models.GuestSideGroom, models.GuestSideBoth:
		return true
	}
	return false
}
