package models

import "time"

// Review is a student's rating of a completed booking. The unique index on
// booking_id enforces one review per booking.
type Review struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	BookingID         uint      `gorm:"not null;uniqueIndex" json:"booking_id"`
	ClassID           uint      `gorm:"not null;index" json:"class_id"`
	SessionID         uint      `gorm:"not null" json:"session_id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Rating            int       `gorm:"not null" json:"rating"`
	Comment           string    `json:"comment"`
	InstructorComment *string   `json:"instructor_comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
