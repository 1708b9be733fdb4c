package users

import (
	"context"
	"time"

	"github.com/khanghh/shopdash/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	ByToken(ctx context.Context, token string) (*model.Session, error)
	// ValidByToken joins the owning user: a row comes back only when the
	// token matches, the session is active and unexpired, and the user is
	// active.
	ValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error)
	ByID(ctx context.Context, sessionID uint) (*model.Session, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Session, error)
	TouchActivity(ctx context.Context, sessionID uint, now time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByID(ctx context.Context, sessionID uint) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByUserExcept(ctx context.Context, userID uint, keepToken string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) ByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).Where("session_token = ?", token).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Joins("JOIN user ON user.id = session.user_id").
		Where("session.session_token = ?", token).
		Where("session.is_active = ?", true).
		Where("session.expires_at > ?", now).
		Where("user.is_active = ?", true).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ByID(ctx context.Context, sessionID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_activity DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) TouchActivity(ctx context.Context, sessionID uint, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", sessionID).
		Update("last_activity", now).Error
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("session_token = ?", token).Delete(&model.Session{}).Error
}

func (r *sessionRepository) DeleteByID(ctx context.Context, sessionID uint) error {
	return r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&model.Session{}).Error
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteByUserExcept(ctx context.Context, userID uint, keepToken string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND session_token <> ?", userID, keepToken).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR is_active = ?", now, false).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}
