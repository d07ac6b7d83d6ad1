package services

import (
	"time"

	"github.com/shopspring/decimal"

	"wedplan/internal/budget"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// WeddingInput holds the editable wedding fields. Empty strings and nil
// pointers leave the stored value unchanged on update.
type WeddingInput struct {
	Title      string
	PartnerOne string
	PartnerTwo string
	EventDate  *time.Time
	Location   string
	Currency   string
}

// WeddingServicer defines the contract for weddings and their membership.
type WeddingServicer interface {
	CreateWedding(userID string, input WeddingInput) (*models.Wedding, error)
	GetUserWeddings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Wedding], error)
	GetWeddingByID(userID, weddingID string) (*models.Wedding, error)
	UpdateWedding(userID, weddingID string, input WeddingInput) (*models.Wedding, error)
	DeleteWedding(userID, weddingID string) error
	RequireMember(userID, weddingID string) (*models.WeddingMember, error)
	RequireOwner(userID, weddingID string) error
	ListParticipants(userID, weddingID string) ([]models.WeddingMember, error)
	AddParticipant(userID, weddingID, email string) (*models.WeddingMember, error)
	RemoveParticipant(userID, weddingID, participantID string) error
}

// BudgetSettingsInput replaces the stored budget settings of a wedding.
type BudgetSettingsInput struct {
	GuestsMin      int
	GuestsMax      int
	GuestsExact    *int
	GiftAverage    decimal.Decimal
	SavePercent    float64
	TargetMode     budget.TargetMode
	PersonalPocket *decimal.Decimal
}

// BudgetServicer defines the contract for budget settings and the budget summary.
type BudgetServicer interface {
	GetSettings(userID, weddingID string) (*models.BudgetSettings, error)
	UpdateSettings(userID, weddingID string, input BudgetSettingsInput) (*models.BudgetSettings, error)
	GetSummary(userID, weddingID string) (*budget.Summary, error)
}

// VendorInput holds every vendor field.
type VendorInput struct {
	Name         string
	Category     string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Status       budget.VendorStatus
	FinalAmount  *decimal.Decimal
	Deposit      *decimal.Decimal
	Notes        string
}

// VendorFilter holds optional filter parameters for listing vendors.
// Match is a glob pattern (e.g. "dj*") tested against the vendor name.
type VendorFilter struct {
	Status   *budget.VendorStatus
	Category string
	Match    string
}

// VendorServicer defines the contract for vendor-related business logic.
type VendorServicer interface {
	CreateVendor(userID, weddingID string, input VendorInput) (*models.Vendor, error)
	GetWeddingVendors(userID, weddingID string, page pagination.PageRequest, filter VendorFilter) (*pagination.PageResponse[models.Vendor], error)
	GetVendorByID(userID, weddingID, vendorID string) (*models.Vendor, error)
	UpdateVendor(userID, weddingID, vendorID string, input VendorInput) (*models.Vendor, error)
	DeleteVendor(userID, weddingID, vendorID string) error
}

// GuestInput holds every guest field.
type GuestInput struct {
	Name     string
	Phone    string
	Side     models.GuestSide
	Group    string
	Adults   int
	Children int
	RSVP     models.RSVPStatus
	Notes    string
}

// GuestFilter holds optional filter parameters for listing guests.
type GuestFilter struct {
	RSVP *models.RSVPStatus
	Side *models.GuestSide
}

// GuestHeadcount aggregates the guest list of a wedding.
// Expected counts exclude declined parties.
type GuestHeadcount struct {
	Parties          int                       `json:"parties"`
	Adults           int                       `json:"adults"`
	Children         int                       `json:"children"`
	Total            int                       `json:"total"`
	ExpectedAdults   int                       `json:"expected_adults"`
	ExpectedChildren int                       `json:"expected_children"`
	ExpectedTotal    int                       `json:"expected_total"`
	ByRSVP           map[models.RSVPStatus]int `json:"by_rsvp"`
}

// GuestServicer defines the contract for guest-related business logic.
type GuestServicer interface {
	CreateGuest(userID, weddingID string, input GuestInput) (*models.Guest, error)
	GetWeddingGuests(userID, weddingID string, page pagination.PageRequest, filter GuestFilter) (*pagination.PageResponse[models.Guest], error)
	GetGuestByID(userID, weddingID, guestID string) (*models.Guest, error)
	UpdateGuest(userID, weddingID, guestID string, input GuestInput) (*models.Guest, error)
	DeleteGuest(userID, weddingID, guestID string) error
	GetHeadcount(userID, weddingID string) (*GuestHeadcount, error)
}

// ChecklistInput holds every checklist item field.
type ChecklistInput struct {
	Title       string
	Description string
	Category    string
	DueDate     *time.Time
	Position    *int
}

// ChecklistServicer defines the contract for checklist-related business logic.
type ChecklistServicer interface {
	CreateItem(userID, weddingID string, input ChecklistInput) (*models.ChecklistItem, error)
	GetWeddingChecklist(userID, weddingID string, page pagination.PageRequest, done *bool) (*pagination.PageResponse[models.ChecklistItem], error)
	GetItemByID(userID, weddingID, itemID string) (*models.ChecklistItem, error)
	UpdateItem(userID, weddingID, itemID string, input ChecklistInput) (*models.ChecklistItem, error)
	DeleteItem(userID, weddingID, itemID string) error
	ToggleItem(userID, weddingID, itemID string) (*models.ChecklistItem, error)
}

// VenueInput holds every venue field.
type VenueInput struct {
	Name                  string
	ContactName           string
	ContactPhone          string
	BasePrice             decimal.Decimal
	ChildDiscountPercent  decimal.Decimal
	ChildAgeCutoff        int
	BulkThreshold         int
	BulkPrice             decimal.Decimal
	ReserveThreshold      int
	ReservePrice          decimal.Decimal
	LightingAndSoundPrice decimal.Decimal
	ExtrasPrice           decimal.Decimal
	Notes                 string
}

// VenueComparison lists venues priced for the same guest counts,
// cheapest first.
type VenueComparison struct {
	Guests   int            `json:"guests"`
	Children int            `json:"children"`
	Venues   []models.Venue `json:"venues"`
}

// VenueServicer defines the contract for venue-related business logic.
type VenueServicer interface {
	CreateVenue(userID, weddingID string, input VenueInput) (*models.Venue, error)
	GetWeddingVenues(userID, weddingID string, page pagination.PageRequest) (*pagination.PageResponse[models.Venue], error)
	GetVenueByID(userID, weddingID, venueID string) (*models.Venue, error)
	UpdateVenue(userID, weddingID, venueID string, input VenueInput) (*models.Venue, error)
	DeleteVenue(userID, weddingID, venueID string) error
	CompareVenues(userID, weddingID string, guests, children *int) (*VenueComparison, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
