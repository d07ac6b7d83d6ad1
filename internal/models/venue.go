package models

import (
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
)

// Venue is a comparison record for a candidate event hall.
// TotalPrice and CostPerPerson are derived from the pricing fields and the
// guest counts at the time of the last save.
type Venue struct {
	Base
	WeddingID             string          `gorm:"type:uuid;not null;index" json:"wedding_id"`
	Name                  string          `gorm:"not null" json:"name"`
	ContactName           string          `json:"contact_name"`
	ContactPhone          string          `json:"contact_phone"`
	BasePrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"base_price"`
	ChildDiscountPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"child_discount_percent"`
	ChildAgeCutoff        int             `gorm:"not null;default:0" json:"child_age_cutoff"`
	BulkThreshold         int             `gorm:"not null;default:0" json:"bulk_threshold"`
	BulkPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"bulk_price"`
	ReserveThreshold      int             `gorm:"not null;default:0" json:"reserve_threshold"`
	ReservePrice          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"reserve_price"`
	LightingAndSoundPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"lighting_and_sound_price"`
	ExtrasPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"extras_price"`
	Notes                 string          `json:"notes"`

	GuestCount    int             `gorm:"not null;default:0" json:"guest_count"`
	ChildCount    int             `gorm:"not null;default:0" json:"child_count"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"`
	CostPerPerson decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost_per_person"`
}

// Pricing returns the calculator input for this venue.
func (v *Venue) Pricing() budget.VenuePricing {
	return budget.VenuePricing{
		BasePrice:             v.BasePrice,
		ChildDiscountPercent:  v.ChildDiscountPercent,
		ReserveThreshold:      v.ReserveThreshold,
		ReservePrice:          v.ReservePrice,
		LightingAndSoundPrice: v.LightingAndSoundPrice,
		ExtrasPrice:           v.ExtrasPrice,
	}
}

// Recalculate refreshes the derived price columns for the given counts.
func (v *Venue) Recalculate(guests, children int) budget.VenueQuote {
	q := budget.VenueCost(v.Pricing(), guests, children)
	v.GuestCount = guests
	v.ChildCount = children
	v.TotalPrice = q.TotalCost
	v.CostPerPerson = q.CostPerPerson
	return q
}
