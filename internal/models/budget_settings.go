package models

import (
	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
)

// Default budget settings applied to weddings that never saved their own.
const (
	DefaultSavePercent = 10
	MinSavePercent     = 5
	MaxSavePercent     = 30
)

// BudgetSettings are the per-wedding inputs of the budget calculation.
type BudgetSettings struct {
	Base
	WeddingID      string            `gorm:"type:uuid;not null;uniqueIndex" json:"wedding_id"`
	GuestsMin      int               `gorm:"not null;default:0" json:"guests_min"`
	GuestsMax      int               `gorm:"not null;default:0" json:"guests_max"`
	GuestsExact    *int              `json:"guests_exact,omitempty"`
	GiftAverage    decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"gift_average"`
	SavePercent    float64           `gorm:"not null;default:10" json:"save_percent"`
	TargetMode     budget.TargetMode `gorm:"not null;default:'match'" json:"target_mode"`
	PersonalPocket *decimal.Decimal  `gorm:"type:decimal(12,2)" json:"personal_pocket,omitempty"`
}

// DefaultBudgetSettings returns unsaved settings for a wedding.
func DefaultBudgetSettings(weddingID string) *BudgetSettings {
	return &BudgetSettings{
		WeddingID:   weddingID,
		GiftAverage: decimal.Zero,
		SavePercent: DefaultSavePercent,
		TargetMode:  budget.TargetModeMatch,
	}
}

// Engine converts the stored settings to the calculation input.
func (s *BudgetSettings) Engine() budget.Settings {
	return budget.Settings{
		Guests: budget.GuestRange{
			Min:   s.GuestsMin,
			Max:   s.GuestsMax,
			Exact: s.GuestsExact,
		},
		GiftAverage:    s.GiftAverage,
		SavePercent:    s.SavePercent,
		Mode:           s.TargetMode,
		PersonalPocket: s.PersonalPocket,
	}
}
