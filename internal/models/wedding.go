package models

import "time"

// MemberRole is the access level a user has on a wedding.
type MemberRole string

const (
	MemberRoleOwner       MemberRole = "owner"
	MemberRoleParticipant MemberRole = "participant"
)

// Wedding is the root of all planning data. Every other planning record
// belongs to exactly one wedding.
type Wedding struct {
	Base
	OwnerID    string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title      string     `gorm:"not null" json:"title"`
	PartnerOne string     `json:"partner_one"`
	PartnerTwo string     `json:"partner_two"`
	EventDate  *time.Time `json:"event_date,omitempty"`
	Location   string     `json:"location"`
	Currency   string     `gorm:"size:3;not null" json:"currency"`

	Members []WeddingMember `gorm:"foreignKey:WeddingID" json:"members,omitempty"`
}

// WeddingMember grants a user access to a wedding.
type WeddingMember struct {
	Base
	WeddingID string     `gorm:"type:uuid;not null;uniqueIndex:idx_wedding_member" json:"wedding_id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_wedding_member;index" json:"user_id"`
	Role      MemberRole `gorm:"not null" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
