package repository

import (
	"context"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByStudentAndSession(ctx context.Context, tx *gorm.DB, studentID, sessionID uint) (*models.Booking, error)
	CountActive(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	ConfirmPending(ctx context.Context, tx *gorm.DB, sessionID, studentID uint) (int64, error)
	HistoryByStudent(ctx context.Context, studentID uint) ([]BookingHistoryEntry, error)
	AttendeesBySession(ctx context.Context, sessionID uint) ([]AttendeeEntry, error)
	GetDB() *gorm.DB
}

// BookingHistoryEntry is the read model for a student's booking history:
// the booking joined with its session and a has-reviewed flag.
type BookingHistoryEntry struct {
	BookingID        uint                 `json:"bookingId"`
	ClassID          uint                 `json:"classId"`
	SessionID        uint                 `json:"sessionId"`
	Status           models.BookingStatus `json:"status"`
	ClassName        string               `json:"className"`
	ClassDescription string               `json:"classDescription"`
	ScheduledAt      time.Time            `json:"scheduledAt"`
	HasReviewed      bool                 `json:"hasReviewed"`
}

// AttendeeEntry is a roster row for the instructor view: the booking joined
// with the mirrored identity fields of the student who holds it.
type AttendeeEntry struct {
	BookingID   uint                 `json:"bookingId"`
	StudentID   uint                 `json:"studentId"`
	Status      models.BookingStatus `json:"status"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	PhoneNumber string               `json:"phoneNumber"`
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByStudentAndSession returns the booking row for the pair in any status.
// The partial unique index guarantees at most one non-cancelled row; a
// cancelled row is the reactivation target, so the active one wins the order.
func (r *bookingRepository) FindByStudentAndSession(ctx context.Context, tx *gorm.DB, studentID, sessionID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("student_id = ? AND session_id = ?", studentID, sessionID).
		Order("CASE WHEN status <> 'cancelled' THEN 0 ELSE 1 END, id DESC").
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountActive(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("session_id = ? AND status <> ?", sessionID, models.StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// ConfirmPending flips the pending booking of one student on one session to
// confirmed and reports how many rows changed (0 or 1 given the partial
// unique index).
func (r *bookingRepository) ConfirmPending(ctx context.Context, tx *gorm.DB, sessionID, studentID uint) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("session_id = ? AND student_id = ? AND status = ?", sessionID, studentID, models.StatusPending).
		Update("status", models.StatusConfirmed)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) HistoryByStudent(ctx context.Context, studentID uint) ([]BookingHistoryEntry, error) {
	entries := make([]BookingHistoryEntry, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(`bookings.id AS booking_id, bookings.class_id, bookings.session_id, bookings.status,
			class_sessions.class_name, class_sessions.description AS class_description,
			class_sessions.scheduled_at,
			EXISTS(SELECT 1 FROM reviews WHERE reviews.booking_id = bookings.id) AS has_reviewed`).
		Joins("JOIN class_sessions ON class_sessions.id = bookings.session_id").
		Where("bookings.student_id = ?", studentID).
		Order("class_sessions.scheduled_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *bookingRepository) AttendeesBySession(ctx context.Context, sessionID uint) ([]AttendeeEntry, error) {
	entries := make([]AttendeeEntry, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(`bookings.id AS booking_id, bookings.student_id, bookings.status,
			student_profiles.name, student_profiles.email, student_profiles.phone_number`).
		Joins("JOIN student_profiles ON student_profiles.id = bookings.student_id").
		Where("bookings.session_id = ? AND bookings.status <> ?", sessionID, models.StatusCancelled).
		Order("bookings.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
