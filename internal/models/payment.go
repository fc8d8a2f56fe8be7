package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is one payment attempt against a session. It is linked to a booking
// through (session_id, user_id) during reconciliation; the provider transaction
// token (tid) stays NULL until the ready step responds.
type Payment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	SessionID uint          `gorm:"not null;index" json:"session_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TID       *string       `gorm:"column:tid;type:varchar(64)" json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
