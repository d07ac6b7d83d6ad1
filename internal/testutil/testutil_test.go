package testutil_test

import (
	"testing"

	"wedplan/internal/budget"
	"wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var count int64
	for _, table := range []string{"users", "weddings", "wedding_members", "budget_settings", "vendors", "guests", "checklist_items", "venues", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated databases, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	wedding := testutil.CreateTestWedding(t, db, user.ID)
	var members int64
	db.Model(&models.WeddingMember{}).Where("wedding_id = ? AND role = ?", wedding.ID, models.MemberRoleOwner).Count(&members)
	if members != 1 {
		t.Errorf("expected owner membership, got %d rows", members)
	}

	amount := decimal.NewFromInt(1200)
	vendor := testutil.CreateTestVendor(t, db, wedding.ID, budget.VendorStatusCommitted, &amount, nil)
	if vendor.FinalAmount == nil || !vendor.FinalAmount.Equal(amount) {
		t.Errorf("expected final amount 1200, got %v", vendor.FinalAmount)
	}

	guest := testutil.CreateTestGuest(t, db, wedding.ID, 2, 1, models.RSVPAccepted)
	if guest.Headcount() != 3 {
		t.Errorf("expected headcount 3, got %d", guest.Headcount())
	}

	settings := testutil.CreateTestBudgetSettings(t, db, wedding.ID, 100, 200, 500)
	if settings.ID == "" || settings.TargetMode != budget.TargetModeMatch {
		t.Errorf("unexpected settings %+v", settings)
	}

	venue := testutil.CreateTestVenue(t, db, wedding.ID, 150)
	testutil.AssertMoney(t, "base price", "150.00", venue.BasePrice)
	testutil.AssertMoney(t, "reserve price", "150", venue.ReservePrice)

	item := testutil.CreateTestChecklistItem(t, db, wedding.ID)
	if item.Done {
		t.Error("new checklist item should be open")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrVendorNotFound, "custom message")
	testutil.AssertAppError(t, err, "VENDOR_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
