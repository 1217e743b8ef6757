package model

import "time"

// MaxShots is the film-roll allowance a participant starts with when joining
// an event.
const MaxShots = 10

// Participant is a device's membership record within an event. There is at
// most one participant per (event, device) pair. ShotsRemaining only ever
// decreases and never goes below zero.
type Participant struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	EventID        uint      `gorm:"index:idx_event_and_user,unique;not null" json:"eventId"`
	Event          *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID         string    `gorm:"index:idx_event_and_user,unique;not null" json:"userId"`
	UserName       string    `gorm:"size:100;not null" json:"userName"`
	ShotsRemaining int       `gorm:"not null;check:shots_remaining >= 0 AND shots_remaining <= 10" json:"shotsRemaining"`
}

// HasShots reports whether the participant may still capture a photo.
func (p *Participant) HasShots() bool {
	return p.ShotsRemaining > 0
}
