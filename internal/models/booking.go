package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a student's claim on a seat in a session. A cancelled booking is
// never deleted; re-booking the same (student, session) pair reactivates the
// existing row, preserving audit history.
type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	StudentID uint          `gorm:"not null" json:"student_id"`
	ClassID   uint          `gorm:"not null" json:"class_id"`
	SessionID uint          `gorm:"not null" json:"session_id"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Session *ClassSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// Active reports whether the booking currently holds a seat.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
