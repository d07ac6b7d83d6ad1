package models

import (
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
)

// Vendor is a supplier the couple negotiates with (photographer, DJ, florist...).
// Only committed vendors count toward the budget.
type Vendor struct {
	Base
	WeddingID    string              `gorm:"type:uuid;not null;index" json:"wedding_id"`
	Name         string              `gorm:"not null" json:"name"`
	Category     string              `gorm:"index" json:"category"`
	ContactName  string              `json:"contact_name"`
	ContactPhone string              `json:"contact_phone"`
	ContactEmail string              `json:"contact_email"`
	Status       budget.VendorStatus `gorm:"not null;default:'open'" json:"status"`
	FinalAmount  *decimal.Decimal    `gorm:"type:decimal(12,2)" json:"final_amount,omitempty"`
	Deposit      *decimal.Decimal    `gorm:"type:decimal(12,2)" json:"deposit,omitempty"`
	Notes        string              `json:"notes"`
}

// Commitment returns the part of the vendor the budget aggregator uses.
func (v *Vendor) Commitment() budget.Commitment {
	return budget.Commitment{
		Status:      v.Status,
		FinalAmount: v.FinalAmount,
		Deposit:     v.Deposit,
	}
}
