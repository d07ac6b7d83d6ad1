package services

import (
	"errors"

	"gorm.io/gorm"

	"wedplan/internal/budget"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
)

// budgetService handles budget settings and the derived budget summary.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// loadSettings returns the saved settings of a wedding, or unsaved defaults.
func loadSettings(db *gorm.DB, weddingID string) (*models.BudgetSettings, error) {
	var settings models.BudgetSettings
	if err := db.Where("wedding_id = ?", weddingID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultBudgetSettings(weddingID), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// GetSettings returns the wedding's budget settings.
func (s *budgetService) GetSettings(userID, weddingID string) (*models.BudgetSettings, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	return loadSettings(s.db, weddingID)
}

// UpdateSettings replaces the wedding's budget settings, creating them on first save.
func (s *budgetService) UpdateSettings(userID, weddingID string, input BudgetSettingsInput) (*models.BudgetSettings, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	if input.GuestsMin < 0 || input.GuestsMax < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "guest counts cannot be negative")
	}
	if input.GuestsMax < input.GuestsMin {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "guests_max must not be below guests_min")
	}
	if input.SavePercent < models.MinSavePercent || input.SavePercent > models.MaxSavePercent {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "save_percent must be between 5 and 30")
	}
	if input.GiftAverage.IsNegative() || (input.PersonalPocket != nil && input.PersonalPocket.IsNegative()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
	}
	mode := input.TargetMode
	if !mode.Valid() {
		parsed, ok := budget.ParseTargetMode(string(mode))
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown target_mode")
		}
		mode = parsed
	}

	settings, err := loadSettings(s.db, weddingID)
	if err != nil {
		return nil, err
	}

	settings.GuestsMin = input.GuestsMin
	settings.GuestsMax = input.GuestsMax
	settings.GuestsExact = input.GuestsExact
	settings.GiftAverage = input.GiftAverage
	settings.SavePercent = input.SavePercent
	settings.TargetMode = mode
	settings.PersonalPocket = input.PersonalPocket

	// Save inserts when ID is empty and writes every column, including nils, otherwise
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return settings, nil
}

// GetSummary recomputes the budget summary from the settings and the
// wedding's vendors.
func (s *budgetService) GetSummary(userID, weddingID string) (*budget.Summary, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	settings, err := loadSettings(s.db, weddingID)
	if err != nil {
		return nil, err
	}

	var vendors []models.Vendor
	if err := s.db.Where("wedding_id = ? AND status = ?", weddingID, budget.VendorStatusCommitted).Find(&vendors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	commitments := make([]budget.Commitment, 0, len(vendors))
	for i := range vendors {
		commitments = append(commitments, vendors[i].Commitment())
	}

	summary := budget.Summarize(settings.Engine(), commitments)
	return &summary, nil
}
