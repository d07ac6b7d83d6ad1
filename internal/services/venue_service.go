package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wedplan/internal/budget"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// venueService handles venue price comparison records.
type venueService struct {
	db *gorm.DB
}

// NewVenueService creates a new VenueServicer.
func NewVenueService(db *gorm.DB) VenueServicer {
	return &venueService{db: db}
}

var hundred = decimal.NewFromInt(100)

func validateVenueInput(input VenueInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	for _, p := range []decimal.Decimal{
		input.BasePrice, input.BulkPrice, input.ReservePrice,
		input.LightingAndSoundPrice, input.ExtrasPrice, input.ChildDiscountPercent,
	} {
		if p.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "prices cannot be negative")
		}
	}
	if input.ChildDiscountPercent.GreaterThan(hundred) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "child_discount_percent cannot exceed 100")
	}
	if input.ChildAgeCutoff < 0 || input.BulkThreshold < 0 || input.ReserveThreshold < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "thresholds cannot be negative")
	}
	return nil
}

func applyVenueInput(v *models.Venue, input VenueInput) {
	v.Name = strings.TrimSpace(input.Name)
	v.ContactName = input.ContactName
	v.ContactPhone = input.ContactPhone
	v.BasePrice = input.BasePrice
	v.ChildDiscountPercent = input.ChildDiscountPercent
	v.ChildAgeCutoff = input.ChildAgeCutoff
	v.BulkThreshold = input.BulkThreshold
	v.BulkPrice = input.BulkPrice
	v.ReserveThreshold = input.ReserveThreshold
	v.ReservePrice = input.ReservePrice
	v.LightingAndSoundPrice = input.LightingAndSoundPrice
	v.ExtrasPrice = input.ExtrasPrice
	v.Notes = input.Notes
}

// plannedCounts returns the guest and child counts venues are priced for:
// the normalized guest count of the budget settings and the children of
// every party that has not declined.
func plannedCounts(db *gorm.DB, weddingID string) (guests, children int, err error) {
	settings, err := loadSettings(db, weddingID)
	if err != nil {
		return 0, 0, err
	}
	hc, err := headcount(db, weddingID)
	if err != nil {
		return 0, 0, err
	}
	return budget.NormalizeGuests(settings.Engine().Guests), hc.ExpectedChildren, nil
}

// repriceVenues recalculates the derived price columns for the given counts.
// With persist set, venues whose figures changed are written back.
func repriceVenues(db *gorm.DB, venues []models.Venue, guests, children int, persist bool) error {
	var stale []int
	for i := range venues {
		before := venues[i]
		venues[i].Recalculate(guests, children)
		if before.GuestCount != venues[i].GuestCount ||
			before.ChildCount != venues[i].ChildCount ||
			!before.TotalPrice.Equal(venues[i].TotalPrice) ||
			!before.CostPerPerson.Equal(venues[i].CostPerPerson) {
			stale = append(stale, i)
		}
	}
	if !persist || len(stale) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, i := range stale {
			err := tx.Model(&venues[i]).
				Select("guest_count", "child_count", "total_price", "cost_per_person").
				Updates(&venues[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateVenue adds a venue and prices it for the planned guest counts.
func (s *venueService) CreateVenue(userID, weddingID string, input VenueInput) (*models.Venue, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}

	guests, children, err := plannedCounts(s.db, weddingID)
	if err != nil {
		return nil, err
	}

	venue := &models.Venue{WeddingID: weddingID}
	applyVenueInput(venue, input)
	venue.Recalculate(guests, children)

	if err := s.db.Create(venue).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return venue, nil
}

// GetWeddingVenues returns a paginated list of the wedding's venues priced
// for the current planned counts.
func (s *venueService) GetWeddingVenues(userID, weddingID string, page pagination.PageRequest) (*pagination.PageResponse[models.Venue], error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Venue{}).Where("wedding_id = ?", weddingID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var venues []models.Venue
	if err := base.Scopes(pagination.Order(page, venueSortKeys, "created_at"), pagination.Paginate(page)).Find(&venues).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	guests, children, err := plannedCounts(s.db, weddingID)
	if err != nil {
		return nil, err
	}
	if err := repriceVenues(s.db, venues, guests, children, true); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(venues, page.Page, page.PageSize, totalItems)
	return &result, nil
}

var venueSortKeys = pagination.SortKeys{
	"name":       "name",
	"base_price": "base_price",
	"created_at": "created_at",
}

// GetVenueByID returns a venue of the wedding priced for the current
// planned counts.
func (s *venueService) GetVenueByID(userID, weddingID, venueID string) (*models.Venue, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var venue models.Venue
	if err := s.db.Where("id = ? AND wedding_id = ?", venueID, weddingID).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	guests, children, err := plannedCounts(s.db, weddingID)
	if err != nil {
		return nil, err
	}
	venues := []models.Venue{venue}
	if err := repriceVenues(s.db, venues, guests, children, true); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &venues[0], nil
}

// UpdateVenue replaces every pricing field and re-prices the venue.
func (s *venueService) UpdateVenue(userID, weddingID, venueID string, input VenueInput) (*models.Venue, error) {
	venue, err := s.GetVenueByID(userID, weddingID, venueID)
	if err != nil {
		return nil, err
	}
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}

	guests, children, err := plannedCounts(s.db, weddingID)
	if err != nil {
		return nil, err
	}

	applyVenueInput(venue, input)
	venue.Recalculate(guests, children)

	if err := s.db.Save(venue).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return venue, nil
}

// DeleteVenue soft-deletes a venue.
func (s *venueService) DeleteVenue(userID, weddingID, venueID string) error {
	venue, err := s.GetVenueByID(userID, weddingID, venueID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(venue).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CompareVenues prices every venue of the wedding for the same counts and
// returns them cheapest first. Nil counts fall back to the planned counts.
// The derived price columns are only refreshed when the planned counts are used.
func (s *venueService) CompareVenues(userID, weddingID string, guests, children *int) (*VenueComparison, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	plannedGuests, plannedChildren, err := plannedCounts(s.db, weddingID)
	if err != nil {
		return nil, err
	}
	cmp := &VenueComparison{Guests: plannedGuests, Children: plannedChildren}
	if guests != nil {
		cmp.Guests = max(*guests, 0)
	}
	if children != nil {
		cmp.Children = max(*children, 0)
	}

	var venues []models.Venue
	if err := s.db.Where("wedding_id = ?", weddingID).Find(&venues).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Ad-hoc counts are a what-if and leave the stored figures alone.
	persist := cmp.Guests == plannedGuests && cmp.Children == plannedChildren
	if err := repriceVenues(s.db, venues, cmp.Guests, cmp.Children, persist); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].TotalPrice.LessThan(venues[j].TotalPrice)
	})
	if venues == nil {
		venues = []models.Venue{}
	}
	cmp.Venues = venues

	return cmp, nil
}
