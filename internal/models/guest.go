package models

// RSVPStatus is the invitation answer of a guest party.
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// GuestSide tells whose side invited the party.
type GuestSide string

const (
	GuestSideBride GuestSide = "bride"
	GuestSideGroom GuestSide = "groom"
	GuestSideBoth  GuestSide = "both"
)

// Guest is one invited party: a person or household, with its head count.
type Guest struct {
	Base
	WeddingID string     `gorm:"type:uuid;not null;index" json:"wedding_id"`
	Name      string     `gorm:"not null" json:"name"`
	Phone     string     `json:"phone"`
	Side      GuestSide  `gorm:"not null;default:'both'" json:"side"`
	Group     string     `gorm:"column:guest_group" json:"group"`
	Adults    int        `gorm:"not null;default:1" json:"adults"`
	Children  int        `gorm:"not null;default:0" json:"children"`
	RSVP      RSVPStatus `gorm:"column:rsvp;not null;default:'pending'" json:"rsvp"`
	Notes     string     `json:"notes"`
}

// Headcount is the number of people a party brings.
func (g *Guest) Headcount() int {
	return g.Adults + g.Children
}
