package service

import (
	"context"

	"github.com/onedayclass/booking-service/internal/repository"
)

// QueryService is the read-side composition layer: it assembles booking,
// session and review data for display and never mutates anything.
type QueryService interface {
	BookingHistory(ctx context.Context, studentID uint) ([]repository.BookingHistoryEntry, error)
	Attendees(ctx context.Context, sessionID uint) ([]repository.AttendeeEntry, error)
}

type queryService struct {
	bookingRepo repository.BookingRepository
}

func NewQueryService(bookingRepo repository.BookingRepository) QueryService {
	return &queryService{bookingRepo: bookingRepo}
}

func (s *queryService) BookingHistory(ctx context.Context, studentID uint) ([]repository.BookingHistoryEntry, error) {
	return s.bookingRepo.HistoryByStudent(ctx, studentID)
}

func (s *queryService) Attendees(ctx context.Context, sessionID uint) ([]repository.AttendeeEntry, error) {
	return s.bookingRepo.AttendeesBySession(ctx, sessionID)
}
