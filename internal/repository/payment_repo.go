package repository

import (
	"context"
	"time"

	"github.com/onedayclass/booking-service/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	SaveTID(ctx context.Context, paymentID uint, tid string) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentStatus) error
	MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) SaveTID(ctx context.Context, paymentID uint, tid string) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("tid", tid).Error
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, paymentID uint, status models.PaymentStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}

// MarkFailedOlderThan expires pending payments whose finalize step never came.
func (r *paymentRepository) MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Update("status", models.PaymentFailed)
	return result.RowsAffected, result.Error
}
