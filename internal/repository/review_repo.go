package repository

import (
	"context"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
	List(ctx context.Context, classID, userID *uint) ([]ReviewDetail, error)
	Delete(ctx context.Context, id uint) error
	SetInstructorComment(ctx context.Context, id uint, comment *string) error
}

// ReviewDetail joins a review with the class name and session date it refers to.
type ReviewDetail struct {
	ID                uint      `json:"id"`
	BookingID         uint      `json:"bookingId"`
	ClassID           uint      `json:"classId"`
	SessionID         uint      `json:"sessionId"`
	UserID            uint      `json:"userId"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment"`
	InstructorComment *string   `json:"instructorComment,omitempty"`
	ClassName         string    `json:"className"`
	ScheduledAt       time.Time `json:"scheduledAt"`
	CreatedAt         time.Time `json:"createdAt"`
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) List(ctx context.Context, classID, userID *uint) ([]ReviewDetail, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select(`reviews.id, reviews.booking_id, reviews.class_id, reviews.session_id,
			reviews.user_id, reviews.rating, reviews.comment, reviews.instructor_comment,
			reviews.created_at, class_sessions.class_name, class_sessions.scheduled_at`).
		Joins("JOIN class_sessions ON class_sessions.id = reviews.session_id").
		Order("reviews.created_at DESC")

	if classID != nil {
		q = q.Where("reviews.class_id = ?", *classID)
	}
	if userID != nil {
		q = q.Where("reviews.user_id = ?", *userID)
	}

	details := make([]ReviewDetail, 0)
	if err := q.Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (r *reviewRepository) SetInstructorComment(ctx context.Context, id uint, comment *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("instructor_comment", comment).Error
}
