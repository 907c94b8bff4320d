package repository

import (
	"context"
	"errors"

	"ticketx/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new SessionRepository implementation.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByToken returns (nil, nil) for an unknown token; sessions silently not
// existing is the normal logged-out state, not an error.
func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	var session models.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &session, nil
}

// Delete is idempotent; removing an unknown or empty token is a no-op.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.Session{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
