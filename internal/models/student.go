package models

import "time"

// StudentProfile mirrors identity fields owned by the identity service. The
// catalog consumer keeps it in sync; the booking core only reads it when
// assembling the attendee roster.
type StudentProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
