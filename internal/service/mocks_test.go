package service

import (
	"context"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"github.com/onedayclass/booking-service/internal/repository"
	"github.com/onedayclass/booking-service/pkg/kakaopay"
	"gorm.io/gorm"
)

// Hand-rolled repository mocks shared by the service tests. Only the
// function fields a test sets are expected to be called.

type mockSessionRepo struct {
	findByIDFn          func(ctx context.Context, id uint) (*models.ClassSession, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.ClassSession, error)
	findByClassIDFn     func(ctx context.Context, classID uint) ([]models.ClassSession, error)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uint) (*models.ClassSession, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockSessionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ClassSession, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockSessionRepo) FindByClassID(ctx context.Context, classID uint) ([]models.ClassSession, error) {
	return m.findByClassIDFn(ctx, classID)
}

type mockBookingRepo struct {
	createFn                  func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn                func(ctx context.Context, id uint) (*models.Booking, error)
	findByStudentAndSessionFn func(ctx context.Context, tx *gorm.DB, studentID, sessionID uint) (*models.Booking, error)
	countActiveFn             func(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error)
	updateStatusFn            func(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	confirmPendingFn          func(ctx context.Context, tx *gorm.DB, sessionID, studentID uint) (int64, error)
	historyFn                 func(ctx context.Context, studentID uint) ([]repository.BookingHistoryEntry, error)
	attendeesFn               func(ctx context.Context, sessionID uint) ([]repository.AttendeeEntry, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.createFn(ctx, tx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByStudentAndSession(ctx context.Context, tx *gorm.DB, studentID, sessionID uint) (*models.Booking, error) {
	return m.findByStudentAndSessionFn(ctx, tx, studentID, sessionID)
}
func (m *mockBookingRepo) CountActive(ctx context.Context, tx *gorm.DB, sessionID uint) (int64, error) {
	return m.countActiveFn(ctx, tx, sessionID)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, tx, bookingID, status)
}
func (m *mockBookingRepo) ConfirmPending(ctx context.Context, tx *gorm.DB, sessionID, studentID uint) (int64, error) {
	return m.confirmPendingFn(ctx, tx, sessionID, studentID)
}
func (m *mockBookingRepo) HistoryByStudent(ctx context.Context, studentID uint) ([]repository.BookingHistoryEntry, error) {
	return m.historyFn(ctx, studentID)
}
func (m *mockBookingRepo) AttendeesBySession(ctx context.Context, sessionID uint) ([]repository.AttendeeEntry, error) {
	return m.attendeesFn(ctx, sessionID)
}
func (m *mockBookingRepo) GetDB() *gorm.DB {
	return nil
}

type mockPaymentRepo struct {
	createFn              func(ctx context.Context, payment *models.Payment) error
	findByIDFn            func(ctx context.Context, id uint) (*models.Payment, error)
	saveTIDFn             func(ctx context.Context, paymentID uint, tid string) error
	updateStatusFn        func(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentStatus) error
	markFailedOlderThanFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	return m.createFn(ctx, payment)
}
func (m *mockPaymentRepo) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPaymentRepo) SaveTID(ctx context.Context, paymentID uint, tid string) error {
	return m.saveTIDFn(ctx, paymentID, tid)
}
func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentStatus) error {
	return m.updateStatusFn(ctx, tx, paymentID, status)
}
func (m *mockPaymentRepo) MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.markFailedOlderThanFn(ctx, cutoff)
}
func (m *mockPaymentRepo) GetDB() *gorm.DB {
	return nil
}

type mockReviewRepo struct {
	createFn               func(ctx context.Context, review *models.Review) error
	findByIDFn             func(ctx context.Context, id uint) (*models.Review, error)
	existsForBookingFn     func(ctx context.Context, bookingID uint) (bool, error)
	listFn                 func(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error)
	deleteFn               func(ctx context.Context, id uint) error
	setInstructorCommentFn func(ctx context.Context, id uint, comment *string) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.createFn(ctx, review)
}
func (m *mockReviewRepo) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReviewRepo) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	return m.existsForBookingFn(ctx, bookingID)
}
func (m *mockReviewRepo) List(ctx context.Context, classID, userID *uint) ([]repository.ReviewDetail, error) {
	return m.listFn(ctx, classID, userID)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockReviewRepo) SetInstructorComment(ctx context.Context, id uint, comment *string) error {
	return m.setInstructorCommentFn(ctx, id, comment)
}

type mockProvider struct {
	readyFn   func(ctx context.Context, req kakaopay.ReadyRequest) (*kakaopay.ReadyResponse, error)
	approveFn func(ctx context.Context, req kakaopay.ApproveRequest) error
}

func (m *mockProvider) Ready(ctx context.Context, req kakaopay.ReadyRequest) (*kakaopay.ReadyResponse, error) {
	return m.readyFn(ctx, req)
}
func (m *mockProvider) Approve(ctx context.Context, req kakaopay.ApproveRequest) error {
	return m.approveFn(ctx, req)
}
