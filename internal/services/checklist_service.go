package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "wedplan/internal/errors"
	"wedplan/internal/models"
	"wedplan/internal/pagination"
)

// checklistService handles the planning checklist of a wedding.
type checklistService struct {
	db *gorm.DB
}

// NewChecklistService creates a new ChecklistServicer.
func NewChecklistService(db *gorm.DB) ChecklistServicer {
	return &checklistService{db: db}
}

// CreateItem appends an item to the checklist. Without an explicit
// position the item goes after the current last one.
func (s *checklistService) CreateItem(userID, weddingID string, input ChecklistInput) (*models.ChecklistItem, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	item := &models.ChecklistItem{
		WeddingID:   weddingID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		DueDate:     input.DueDate,
	}

	if input.Position != nil {
		item.Position = *input.Position
	} else {
		var last int
		err := s.db.Model(&models.ChecklistItem{}).
			Select("COALESCE(MAX(position), 0)").
			Where("wedding_id = ?", weddingID).
			Scan(&last).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		item.Position = last + 1
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetWeddingChecklist returns checklist items in position order,
// optionally filtered by completion.
func (s *checklistService) GetWeddingChecklist(
	userID, weddingID string,
	page pagination.PageRequest,
	done *bool,
) (*pagination.PageResponse[models.ChecklistItem], error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.ChecklistItem{}).Where("wedding_id = ?", weddingID)
	if done != nil {
		base = base.Where("done = ?", *done)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.ChecklistItem
	if err := base.Scopes(pagination.Order(page, checklistSortKeys, "position, created_at"), pagination.Paginate(page)).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

var checklistSortKeys = pagination.SortKeys{
	"position":   "position",
	"due_date":   "due_date",
	"title":      "title",
	"created_at": "created_at",
}

// GetItemByID returns a checklist item of the wedding.
func (s *checklistService) GetItemByID(userID, weddingID, itemID string) (*models.ChecklistItem, error) {
	if _, err := requireMember(s.db, userID, weddingID); err != nil {
		return nil, err
	}

	var item models.ChecklistItem
	if err := s.db.Where("id = ? AND wedding_id = ?", itemID, weddingID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChecklistItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem updates the non-empty fields of a checklist item.
func (s *checklistService) UpdateItem(userID, weddingID, itemID string, input ChecklistInput) (*models.ChecklistItem, error) {
	item, err := s.GetItemByID(userID, weddingID, itemID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if t := strings.TrimSpace(input.Title); t != "" {
		updates["title"] = t
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.DueDate != nil {
		updates["due_date"] = input.DueDate
	}
	if input.Position != nil {
		updates["position"] = *input.Position
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return item, nil
}

// DeleteItem soft-deletes a checklist item.
func (s *checklistService) DeleteItem(userID, weddingID, itemID string) error {
	item, err := s.GetItemByID(userID, weddingID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ToggleItem flips the done flag and stamps or clears the completion time.
func (s *checklistService) ToggleItem(userID, weddingID, itemID string) (*models.ChecklistItem, error) {
	item, err := s.GetItemByID(userID, weddingID, itemID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if !item.Done {
		now := time.Now()
		completedAt = &now
	}

	updates := map[string]interface{}{
		"done":         !item.Done,
		"completed_at": completedAt,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}
