package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"wedplan/internal/logger"
	"wedplan/internal/models"
)

// Audit actions recorded by the handlers.
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// Audited resource types.
const (
	ResourceUser           = "user"
	ResourceWedding        = "wedding"
	ResourceWeddingMember  = "wedding_member"
	ResourceBudgetSettings = "budget_settings"
	ResourceVendor         = "vendor"
	ResourceGuest          = "guest"
	ResourceChecklistItem  = "checklist_item"
	ResourceVenue          = "venue"
)

// auditService writes the audit trail of planning changes.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// encodeChanges renders the changed fields as JSON. Money values marshal
// through decimal's string form.
func encodeChanges(changes map[string]any) (string, error) {
	if len(changes) == 0 {
		return "", nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// Log records who changed which planning resource. A failed write is logged
// and swallowed; the change itself has already been committed.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.With("user_id", userID, "action", action, "resource_type", resourceType, "resource_id", resourceID)

	changesJSON, err := encodeChanges(changes)
	if err != nil {
		log.Errorw("failed to encode audit changes", "error", err)
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}
