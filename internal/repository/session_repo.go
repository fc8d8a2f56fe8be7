package repository

import (
	"context"

	"github.com/onedayclass/booking-service/internal/models"
	"gorm.io/gorm"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ClassSession, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ClassSession, error)
	FindByClassID(ctx context.Context, classID uint) ([]models.ClassSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.ClassSession, error) {
	var session models.ClassSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate acquires a row-level lock on the session within the given
// transaction, serializing concurrent booking mutations against it.
func (r *sessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ClassSession, error) {
	var session models.ClassSession
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByClassID(ctx context.Context, classID uint) ([]models.ClassSession, error) {
	var sessions []models.ClassSession
	if err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("scheduled_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
