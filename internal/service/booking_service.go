package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/repository"
	"github.com/onedayclass/booking-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAlreadyBooked   = errors.New("student already has an active booking for this session")
	ErrSeatsExhausted  = errors.New("no remaining seats for this session")
	ErrBookingNotFound = errors.New("booking not found or already cancelled")
)

// SessionAvailability is the per-session aggregate returned to clients:
// capacity minus every non-cancelled booking, plus whether the requesting
// student already holds one.
type SessionAvailability struct {
	SessionID      uint                 `json:"sessionId"`
	ClassID        uint                 `json:"classId"`
	ClassName      string               `json:"className"`
	ScheduledAt    time.Time            `json:"scheduledAt"`
	Capacity       int                  `json:"capacity"`
	RemainingSeats int                  `json:"remainingSeats"`
	AlreadyBooked  bool                 `json:"alreadyBooked"`
	BookingStatus  models.BookingStatus `json:"bookingStatus,omitempty"`
}

type BookingService interface {
	GetAvailability(ctx context.Context, classID uint, studentID *uint) ([]SessionAvailability, error)
	CreateBooking(ctx context.Context, studentID, classID, sessionID uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, studentID, classID, sessionID uint) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	sessionRepo repository.SessionRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, sessionRepo repository.SessionRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		publisher:   publisher,
	}
}

func (s *bookingService) GetAvailability(ctx context.Context, classID uint, studentID *uint) ([]SessionAvailability, error) {
	sessions, err := s.sessionRepo.FindByClassID(ctx, classID)
	if err != nil {
		return nil, err
	}

	db := s.bookingRepo.GetDB()
	result := make([]SessionAvailability, 0, len(sessions))
	for _, session := range sessions {
		active, err := s.bookingRepo.CountActive(ctx, db, session.ID)
		if err != nil {
			return nil, err
		}

		avail := SessionAvailability{
			SessionID:      session.ID,
			ClassID:        session.ClassID,
			ClassName:      session.ClassName,
			ScheduledAt:    session.ScheduledAt,
			Capacity:       session.Capacity,
			RemainingSeats: session.Capacity - int(active),
		}

		if studentID != nil {
			booking, err := s.bookingRepo.FindByStudentAndSession(ctx, db, *studentID, session.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if booking != nil {
				avail.BookingStatus = booking.Status
				avail.AlreadyBooked = booking.Active()
			}
		}

		result = append(result, avail)
	}
	return result, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, studentID, classID, sessionID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the session row — serializes concurrent booking attempts
		session, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		// 2. Check double-booking; a cancelled row is the reactivation target
		existing, err := s.bookingRepo.FindByStudentAndSession(ctx, tx, studentID, sessionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.Active() {
			return ErrAlreadyBooked
		}

		// 3. Capacity check
		active, err := s.bookingRepo.CountActive(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if int(active) >= session.Capacity {
			return ErrSeatsExhausted
		}

		// 4. Reactivate the cancelled row in place, or insert a new pending one
		if existing != nil {
			if err := s.bookingRepo.UpdateStatus(ctx, tx, existing.ID, models.StatusPending); err != nil {
				return err
			}
			existing.Status = models.StatusPending
			result = existing
			return nil
		}

		booking := &models.Booking{
			StudentID: studentID,
			ClassID:   classID,
			SessionID: sessionID,
			Status:    models.StatusPending,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result)
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, studentID, classID, sessionID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		booking, err := s.bookingRepo.FindByStudentAndSession(ctx, tx, studentID, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		// Cancelling an already-cancelled booking is NotFound, not a no-op
		if !booking.Active() {
			return ErrBookingNotFound
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.StatusCancelled); err != nil {
			return err
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.cancelled", result)
	return result, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		log.Printf("[BookingService] failed to publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
