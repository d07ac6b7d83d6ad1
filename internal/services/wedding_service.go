package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// weddingService handles weddings and who may access them.
type weddingService struct {
	db              *gorm.DB
	defaultCurrency string
}

// NewWeddingService creates a new WeddingServicer. defaultCurrency is used
// for weddings created without an explicit currency.
func NewWeddingService(db *gorm.DB, defaultCurrency string) WeddingServicer {
	if defaultCurrency == "" {
		defaultCurrency = "ILS"
	}
	return &weddingService{db: db, defaultCurrency: strings.ToUpper(defaultCurrency)}
}

// requireMember returns the caller's membership of a wedding. Callers that
// are not members get ErrWeddingNotFound so wedding IDs cannot be probed.
func requireMember(db *gorm.DB, userID, weddingID string) (*models.WeddingMember, error) {
	var member models.WeddingMember
	if err := db.Where("wedding_id = ? AND user_id = ?", weddingID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWeddingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// requireOwner is requireMember restricted to the owner role.
func requireOwner(db *gorm.DB, userID, weddingID string) error {
	member, err := requireMember(db, userID, weddingID)
	if err != nil {
		return err
	}
	if member.Role != models.MemberRoleOwner {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Only the wedding owner can do this")
	}
	return nil
}

// CreateWedding creates a wedding and makes the caller its owner.
func (s *weddingService) CreateWedding(userID string, input WeddingInput) (*models.Wedding, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	wedding := &models.Wedding{
		OwnerID:    userID,
		Title:      strings.TrimSpace(input.Title),
		PartnerOne: input.PartnerOne,
		PartnerTwo: input.PartnerTwo,
		EventDate:  input.EventDate,
		Location:   input.Location,
		Currency:   currency,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wedding).Error; err != nil {
			return err
		}
		owner := &models.WeddingMember{
			WeddingID: wedding.ID,
			UserID:    userID,
			Role:      models.MemberRoleOwner,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return wedding, nil
}

// GetUserWeddings returns a paginated list of the weddings the user is a member of.
func (s *weddingService) GetUserWeddings(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Wedding], error) {
	page.Defaults()

	memberOf := s.db.Model(&models.WeddingMember{}).Select("wedding_id").Where("user_id = ?", userID)
	base := s.db.Model(&models.Wedding{}).Where("id IN (?)", memberOf)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var weddings []models.Wedding
	if err := base.Scopes(pagination.Order(page, weddingSortKeys, "created_at DESC"), pagination.Paginate(page)).Find(&weddings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(weddings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

var weddingSortKeys = pagination.SortKeys{
	"title":      "title",
	"event_date": "event_date",
	"created_at": "created_at",
}

// GetWeddingByID returns a wedding if the user is a member.
func (s *weddingService) GetWeddingByID(userID, weddingID string) (*models.Wedding, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var wedding models.Wedding
	if err := s.db.Where("id = ?", weddingID).First(&wedding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWeddingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &wedding, nil
}

// UpdateWedding updates the non-empty fields of a wedding. Any member may edit.
func (s *weddingService) UpdateWedding(userID, weddingID string, input WeddingInput) (*models.Wedding, error) {
	wedding, err := s.GetWeddingByID(userID, weddingID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if t := strings.TrimSpace(input.Title); t != "" {
		updates["title"] = t
	}
	if input.PartnerOne != "" {
		updates["partner_one"] = input.PartnerOne
	}
	if input.PartnerTwo != "" {
		updates["partner_two"] = input.PartnerTwo
	}
	if input.EventDate != nil {
		updates["event_date"] = input.EventDate
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.Currency != "" {
		updates["currency"] = strings.ToUpper(input.Currency)
	}

	if len(updates) > 0 {
		if err := s.db.Model(wedding).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return wedding, nil
}

// DeleteWedding soft-deletes a wedding and revokes every membership.
// Only the owner may delete.
func (s *weddingService) DeleteWedding(userID, weddingID string) error {
	if err := requireOwner(s.db, userID, weddingID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", weddingID).Delete(&models.Wedding{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("wedding_id = ?", weddingID).Delete(&models.WeddingMember{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RequireMember returns the caller's membership or ErrWeddingNotFound.
func (s *weddingService) RequireMember(userID, weddingID string) (*models.WeddingMember, error) {
	return requireMember(s.db, userID, weddingID)
}

// RequireOwner fails with ErrForbidden for participants and
// ErrWeddingNotFound for non-members.
func (s *weddingService) RequireOwner(userID, weddingID string) error {
	return requireOwner(s.db, userID, weddingID)
}

// ListParticipants returns every member of the wedding, owner first.
func (s *weddingService) ListParticipants(userID, weddingID string) ([]models.WeddingMember, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var members []models.WeddingMember
	err := s.db.Preload("User").
		Where("wedding_id = ?", weddingID).
		Order("CASE WHEN role = 'owner' THEN 0 ELSE 1 END, created_at").
		Find(&members).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// AddParticipant grants an existing user access to the wedding. Only the owner may invite.
func (s *weddingService) AddParticipant(userID, weddingID, email string) (*models.WeddingMember, error) {
	if err := requireOwner(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var invitee models.User
	err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).First(&invitee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.WeddingMember{}).
		Where("wedding_id = ? AND user_id = ?", weddingID, invitee.ID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	member := &models.WeddingMember{
		WeddingID: weddingID,
		UserID:    invitee.ID,
		Role:      models.MemberRoleParticipant,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	member.User = &invitee

	return member, nil
}

// RemoveParticipant revokes a participant's access. Only the owner may
// remove participants and the owner cannot be removed.
func (s *weddingService) RemoveParticipant(userID, weddingID, participantID string) error {
	if err := requireOwner(s.db, userID, weddingID); err != nil {
		return err
	}

	var member models.WeddingMember
	if err := s.db.Where("wedding_id = ? AND user_id = ?", weddingID, participantID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMemberNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if member.Role == models.MemberRoleOwner {
		return apperrors.ErrCannotRemoveOwner
	}

	if err := s.db.Unscoped().Delete(&member).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
