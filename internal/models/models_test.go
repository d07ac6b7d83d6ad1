package models

import (
	"testing"

	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
)

func TestVenueRecalculate(t *testing.T) {
	v := &Venue{
		BasePrice:        decimal.NewFromInt(150),
		ReserveThreshold: 100,
		ReservePrice:     decimal.NewFromInt(180),
		ExtrasPrice:      decimal.NewFromInt(400),
	}

	q := v.Recalculate(120, 0)

	if !q.MealCost.Equal(decimal.NewFromInt(18600)) {
		t.Errorf("expected meal cost 18600, got %s", q.MealCost)
	}
	if !v.TotalPrice.Equal(decimal.NewFromInt(19000)) {
		t.Errorf("expected total 19000, got %s", v.TotalPrice)
	}
	if v.GuestCount != 120 || v.ChildCount != 0 {
		t.Errorf("expected counts 120/0, got %d/%d", v.GuestCount, v.ChildCount)
	}
	if !v.CostPerPerson.Equal(decimal.RequireFromString("158.33")) {
		t.Errorf("expected cost per person 158.33, got %s", v.CostPerPerson)
	}
}

func TestBudgetSettingsEngine(t *testing.T) {
	exact := 120
	pocket := decimal.NewFromInt(5000)
	s := &BudgetSettings{
		GuestsMin:      80,
		GuestsMax:      100,
		GuestsExact:    &exact,
		GiftAverage:    decimal.NewFromInt(450),
		SavePercent:    15,
		TargetMode:     budget.TargetModeProfit,
		PersonalPocket: &pocket,
	}

	in := s.Engine()
	if budget.NormalizeGuests(in.Guests) != 120 {
		t.Errorf("expected exact guest count to be carried over")
	}
	if in.Mode != budget.TargetModeProfit || in.SavePercent != 15 {
		t.Errorf("unexpected mode/percent %s/%v", in.Mode, in.SavePercent)
	}
	if in.PersonalPocket == nil || !in.PersonalPocket.Equal(pocket) {
		t.Error("expected personal pocket to be carried over")
	}
}

func TestDefaultBudgetSettings(t *testing.T) {
	s := DefaultBudgetSettings("w-1")
	if s.WeddingID != "w-1" || s.TargetMode != budget.TargetModeMatch || s.SavePercent != DefaultSavePercent {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.ID != "" {
		t.Error("default settings must not carry an ID")
	}
}

func TestGuestHeadcount(t *testing.T) {
	g := &Guest{Adults: 2, Children: 3}
	if g.Headcount() != 5 {
		t.Errorf("expected headcount 5, got %d", g.Headcount())
	}
}

func TestVendorCommitment(t *testing.T) {
	amount := decimal.NewFromInt(9000)
	v := &Vendor{Status: budget.VendorStatusCommitted, FinalAmount: &amount}
	c := v.Commitment()
	if c.Status != budget.VendorStatusCommitted || c.FinalAmount == nil || c.Deposit != nil {
		t.Errorf("unexpected commitment %+v", c)
	}
}
