package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"wedplan/internal/budget"
	"wedplan/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d.%s", nextID(), strings.ToLower(gofakeit.Email()))
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWedding creates a wedding owned by the given user, with the owner
// membership row.
func CreateTestWedding(t *testing.T, db *gorm.DB, ownerID string) *models.Wedding {
	t.Helper()

	wedding := &models.Wedding{
		OwnerID:    ownerID,
		Title:      fmt.Sprintf("Wedding %d", nextID()),
		PartnerOne: gofakeit.FirstName(),
		PartnerTwo: gofakeit.FirstName(),
		Location:   gofakeit.City(),
		Currency:   "ILS",
	}
	if err := db.Create(wedding).Error; err != nil {
		t.Fatalf("failed to create test wedding: %v", err)
	}
	AddTestMember(t, db, wedding.ID, ownerID, models.MemberRoleOwner)
	return wedding
}

// AddTestMember grants a user access to a wedding.
func AddTestMember(t *testing.T, db *gorm.DB, weddingID, userID string, role models.MemberRole) *models.WeddingMember {
	t.Helper()

	member := &models.WeddingMember{WeddingID: weddingID, UserID: userID, Role: role}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// CreateTestBudgetSettings saves budget settings with the given guest range and gift average.
func CreateTestBudgetSettings(t *testing.T, db *gorm.DB, weddingID string, guestsMin, guestsMax int, giftAverage int64) *models.BudgetSettings {
	t.Helper()

	settings := models.DefaultBudgetSettings(weddingID)
	settings.GuestsMin = guestsMin
	settings.GuestsMax = guestsMax
	settings.GiftAverage = decimal.NewFromInt(giftAverage)
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test budget settings: %v", err)
	}
	return settings
}

// CreateTestVendor creates a vendor. Amounts are optional.
func CreateTestVendor(t *testing.T, db *gorm.DB, weddingID string, status budget.VendorStatus, finalAmount, deposit *decimal.Decimal) *models.Vendor {
	t.Helper()

	vendor := &models.Vendor{
		WeddingID:    weddingID,
		Name:         fmt.Sprintf("%s %d", gofakeit.Company(), nextID()),
		Category:     "catering",
		ContactName:  gofakeit.Name(),
		ContactPhone: gofakeit.Phone(),
		Status:       status,
		FinalAmount:  finalAmount,
		Deposit:      deposit,
	}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("failed to create test vendor: %v", err)
	}
	return vendor
}

// CreateTestGuest creates a guest party.
func CreateTestGuest(t *testing.T, db *gorm.DB, weddingID string, adults, children int, rsvp models.RSVPStatus) *models.Guest {
	t.Helper()

	guest := &models.Guest{
		WeddingID: weddingID,
		Name:      gofakeit.Name(),
		Phone:     gofakeit.Phone(),
		Side:      models.GuestSideBoth,
		Adults:    adults,
		Children:  children,
		RSVP:      rsvp,
	}
	if err := db.Select("*").Create(guest).Error; err != nil {
		t.Fatalf("failed to create test guest: %v", err)
	}
	return guest
}

// CreateTestChecklistItem creates an open checklist item.
func CreateTestChecklistItem(t *testing.T, db *gorm.DB, weddingID string) *models.ChecklistItem {
	t.Helper()

	item := &models.ChecklistItem{
		WeddingID: weddingID,
		Title:     gofakeit.Sentence(3),
		Position:  int(nextID()),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test checklist item: %v", err)
	}
	return item
}

// CreateTestVenue creates a venue with a flat per-guest price.
func CreateTestVenue(t *testing.T, db *gorm.DB, weddingID string, basePrice int64) *models.Venue {
	t.Helper()

	venue := &models.Venue{
		WeddingID: weddingID,
		Name:         fmt.Sprintf("Hall %d", nextID()),
		BasePrice:    decimal.NewFromInt(basePrice),
		ReservePrice: decimal.NewFromInt(basePrice),
	}
	if err := db.Create(venue).Error; err != nil {
		t.Fatalf("failed to create test venue: %v", err)
	}
	return venue
}
