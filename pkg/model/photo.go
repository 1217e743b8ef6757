package model

import "time"

// Photo is a single uploaded capture. Records are immutable; this system
// never updates or deletes them.
type Photo struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created"`
	EventID     uint      `gorm:"index;not null" json:"eventId"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID      string    `gorm:"not null" json:"userId"`
	FileName    string    `gorm:"not null" json:"fileName"`
	ContentType string    `gorm:"not null" json:"contentType"`
	Size        int64     `json:"size"`
	ObjectKey   string    `gorm:"not null" json:"-"`
}
