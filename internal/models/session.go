package models

import "time"

// ClassSession is one scheduled occurrence of a class, with its own capacity
// and cost. The catalog service owns these rows; the booking core keeps a
// read-only mirror synced by the catalog consumer and never writes them from
// request handlers.
type ClassSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassID     uint      `gorm:"not null;index" json:"class_id"`
	ClassName   string    `gorm:"not null" json:"class_name"`
	Description string    `json:"description"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Cost        float64   `gorm:"not null" json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
