package service

import (
	"context"
	"errors"

	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotConfirmed = errors.New("booking is not confirmed")
	ErrDuplicateReview     = errors.New("a review already exists for this booking")
	ErrReviewNotFound      = errors.New("review not found")
	ErrNotReviewOwner      = errors.New("review belongs to a different user")
)

type CreateReviewInput struct {
	BookingID uint
	Rating    int
	Comment   string
}

type ReviewService interface {
	CreateReview(ctx context.Context, userID uint, input CreateReviewInput) (*models.Review, error)
	ListReviews(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error)
	DeleteReview(ctx context.Context, userID, reviewID uint) error
	SetInstructorComment(ctx context.Context, reviewID uint, comment string) error
	ClearInstructorComment(ctx context.Context, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uint, input CreateReviewInput) (*models.Review, error) {
	booking, err := s.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.StudentID != userID {
		return nil, ErrNotReviewOwner
	}
	if booking.Status != models.StatusConfirmed {
		return nil, ErrBookingNotConfirmed
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		BookingID: booking.ID,
		ClassID:   booking.ClassID,
		SessionID: booking.SessionID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// The unique index on booking_id closes the check-then-insert race
		return nil, ErrDuplicateReview
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error) {
	return s.reviewRepo.List(ctx, classID, userID)
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *reviewService) SetInstructorComment(ctx context.Context, reviewID uint, comment string) error {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return s.reviewRepo.SetInstructorComment(ctx, reviewID, &comment)
}

func (s *reviewService) ClearInstructorComment(ctx context.Context, reviewID uint) error {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return s.reviewRepo.SetInstructorComment(ctx, reviewID, nil)
}
