package models

import "time"

// ChecklistItem is a single planning task.
type ChecklistItem struct {
	Base
	WeddingID   string     `gorm:"type:uuid;not null;index" json:"wedding_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Done        bool       `gorm:"not null;default:false" json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Position    int        `gorm:"not null;default:0" json:"position"`
}
