package model

import "time"

// Event is a named photo-sharing session. Participants find it by its join
// code, which the organizer usually renders as a QR code.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedBy string    `gorm:"not null" json:"createdBy"`
	JoinCode  string    `gorm:"uniqueIndex;not null" json:"qrCode"`
	Slug      string    `gorm:"index" json:"slug"`
}
