package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/repository"
	"github.com/onedayclass/booking-service/pkg/kakaopay"
	"github.com/onedayclass/booking-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrNotPaymentOwner       = errors.New("payment belongs to a different user")
	ErrMissingPaymentInfo    = errors.New("required payment information is missing")
	ErrPaymentProvider       = errors.New("payment provider request failed")
	ErrPaymentApprovalFailed = errors.New("payment approval failed")
)

// PaymentProvider is the two-phase external contract: ready opens a
// transaction and returns a redirect URL plus tid, approve settles it.
type PaymentProvider interface {
	Ready(ctx context.Context, req kakaopay.ReadyRequest) (*kakaopay.ReadyResponse, error)
	Approve(ctx context.Context, req kakaopay.ApproveRequest) error
}

type InitiateResult struct {
	PaymentID   uint   `json:"paymentId"`
	RedirectURL string `json:"redirectUrl"`
}

type PaymentService interface {
	Initiate(ctx context.Context, userID, sessionID uint) (*InitiateResult, error)
	Finalize(ctx context.Context, userID, paymentID uint, pgToken string) error
	ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error)
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	bookingRepo  repository.BookingRepository
	sessionRepo  repository.SessionRepository
	provider     PaymentProvider
	publisher    *rabbitmq.Publisher
	redirectBase string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	sessionRepo repository.SessionRepository,
	provider PaymentProvider,
	publisher *rabbitmq.Publisher,
	redirectBase string,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		provider:     provider,
		publisher:    publisher,
		redirectBase: redirectBase,
	}
}

func (s *paymentService) Initiate(ctx context.Context, userID, sessionID uint) (*InitiateResult, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		UserID:    userID,
		SessionID: sessionID,
		Amount:    session.Cost,
		Status:    models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	ready, err := s.provider.Ready(ctx, kakaopay.ReadyRequest{
		OrderID:     strconv.FormatUint(uint64(payment.ID), 10),
		UserID:      strconv.FormatUint(uint64(userID), 10),
		ItemName:    session.ClassName,
		Amount:      int(session.Cost),
		ApprovalURL: fmt.Sprintf("%s/payment/success/%d", s.redirectBase, sessionID),
		CancelURL:   fmt.Sprintf("%s/payment/%d", s.redirectBase, sessionID),
		FailURL:     fmt.Sprintf("%s/payment/%d", s.redirectBase, sessionID),
	})
	if err != nil {
		// The pending row stays behind; the sweeper expires it later.
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if err := s.paymentRepo.SaveTID(ctx, payment.ID, ready.TID); err != nil {
		return nil, err
	}

	return &InitiateResult{
		PaymentID:   payment.ID,
		RedirectURL: ready.NextRedirectPCURL,
	}, nil
}

func (s *paymentService) Finalize(ctx context.Context, userID, paymentID uint, pgToken string) error {
	if paymentID == 0 || pgToken == "" {
		return ErrMissingPaymentInfo
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.UserID != userID {
		return ErrNotPaymentOwner
	}
	// Re-finalizing a completed payment is a no-op; no second approve call.
	if payment.Status == models.PaymentCompleted {
		return nil
	}
	if payment.TID == nil || *payment.TID == "" {
		return ErrMissingPaymentInfo
	}

	if err := s.provider.Approve(ctx, kakaopay.ApproveRequest{
		TID:     *payment.TID,
		OrderID: strconv.FormatUint(uint64(payment.ID), 10),
		UserID:  strconv.FormatUint(uint64(userID), 10),
		PGToken: pgToken,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentApprovalFailed, err)
	}

	// Reconciliation: booking confirmation and payment completion commit
	// together or not at all.
	err = s.paymentRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		confirmed, err := s.bookingRepo.ConfirmPending(ctx, tx, payment.SessionID, payment.UserID)
		if err != nil {
			return err
		}
		if confirmed == 0 {
			// Paid with no pending booking left (e.g. cancelled mid-payment).
			// The charge went through, so the payment still completes;
			// flagged for manual reconciliation.
			log.Printf("[PaymentService] payment %d approved but no pending booking for session %d user %d", payment.ID, payment.SessionID, payment.UserID)
		}
		return s.paymentRepo.UpdateStatus(ctx, tx, payment.ID, models.PaymentCompleted)
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish("booking.confirmed", payment); err != nil {
			log.Printf("[PaymentService] failed to publish booking.confirmed for payment %d: %v", payment.ID, err)
		}
	}
	return nil
}

// ExpireStalePayments fails pending payments older than the given TTL; runs
// from a ticker in main.
func (s *paymentService) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.paymentRepo.MarkFailedOlderThan(ctx, time.Now().Add(-olderThan))
}
