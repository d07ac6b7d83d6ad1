package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// guestService handles the guest list of a wedding.
type guestService struct {
	db *gorm.DB
}

// NewGuestService creates a new GuestServicer.
func NewGuestService(db *gorm.DB) GuestServicer {
	return &guestService{db: db}
}

func normalizeGuestInput(input GuestInput) (GuestInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if input.Adults < 0 || input.Children < 0 {
		return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "head counts cannot be negative")
	}
	if input.Side == "" {
		input.Side = models.GuestSideBoth
	}
	if input.RSVP == "" {
		input.RSVP = models.RSVPPending
	}
	return input, nil
}

func applyGuestInput(g *models.Guest, input GuestInput) {
	g.Name = input.Name
	g.Phone = input.Phone
	g.Side = input.Side
	g.Group = input.Group
	g.Adults = input.Adults
	g.Children = input.Children
	g.RSVP = input.RSVP
	g.Notes = input.Notes
}

// CreateGuest adds a party to the guest list.
func (s *guestService) CreateGuest(userID, weddingID string, input GuestInput) (*models.Guest, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	input, err := normalizeGuestInput(input)
	if err != nil {
		return nil, err
	}

	guest := &models.Guest{WeddingID: weddingID}
	applyGuestInput(guest, input)

	// Select("*") so zero adults is stored instead of the column default
	if err := s.db.Select("*").Create(guest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guest, nil
}

// GetWeddingGuests returns a paginated, filtered guest list ordered by name.
func (s *guestService) GetWeddingGuests(
	userID, weddingID string,
	page pagination.PageRequest,
	filter GuestFilter,
) (*pagination.PageResponse[models.Guest], error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Guest{}).Where("wedding_id = ?", weddingID)
	if filter.RSVP != nil {
		base = base.Where("rsvp = ?", *filter.RSVP)
	}
	if filter.Side != nil {
		base = base.Where("side = ?", *filter.Side)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var guests []models.Guest
	if err := base.Scopes(pagination.Order(page, guestSortKeys, "name"), pagination.Paginate(page)).Find(&guests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(guests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

var guestSortKeys = pagination.SortKeys{
	"name":       "name",
	"side":       "side",
	"group":      "guest_group",
	"rsvp":       "rsvp",
	"created_at": "created_at",
}

// GetGuestByID returns a guest of the wedding.
func (s *guestService) GetGuestByID(userID, weddingID, guestID string) (*models.Guest, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := s.db.Where("id = ? AND wedding_id = ?", guestID, weddingID).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGuestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &guest, nil
}

// UpdateGuest replaces every field of a guest.
func (s *guestService) UpdateGuest(userID, weddingID, guestID string, input GuestInput) (*models.Guest, error) {
	guest, err := s.GetGuestByID(userID, weddingID, guestID)
	if err != nil {
		return nil, err
	}

	input, err = normalizeGuestInput(input)
	if err != nil {
		return nil, err
	}
	applyGuestInput(guest, input)

	if err := s.db.Save(guest).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return guest, nil
}

// DeleteGuest soft-deletes a guest.
func (s *guestService) DeleteGuest(userID, weddingID, guestID string) error {
	guest, err := s.GetGuestByID(userID, weddingID, guestID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(guest).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetHeadcount aggregates the guest list.
func (s *guestService) GetHeadcount(userID, weddingID string) (*GuestHeadcount, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	return headcount(s.db, weddingID)
}

func headcount(db *gorm.DB, weddingID string) (*GuestHeadcount, error) {
	var rows []struct {
		RSVP     models.RSVPStatus
		Parties  int
		Adults   int
		Children int
	}
	err := db.Model(&models.Guest{}).
		Select("rsvp, COUNT(*) AS parties, COALESCE(SUM(adults), 0) AS adults, COALESCE(SUM(children), 0) AS children").
		Where("wedding_id = ?", weddingID).
		Group("rsvp").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hc := &GuestHeadcount{ByRSVP: map[models.RSVPStatus]int{
		models.RSVPPending:  0,
		models.RSVPAccepted: 0,
		models.RSVPDeclined: 0,
	}}
	for _, r := range rows {
		hc.Parties += r.Parties
		hc.Adults += r.Adults
		hc.Children += r.Children
		hc.ByRSVP[r.RSVP] += r.Adults + r.Children
		if r.RSVP != models.RSVPDeclined {
			hc.ExpectedAdults += r.Adults
			hc.ExpectedChildren += r.Children
		}
	}
	hc.Total = hc.Adults + hc.Children
	hc.ExpectedTotal = hc.ExpectedAdults + hc.ExpectedChildren

	return hc, nil
}
