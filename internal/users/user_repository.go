package users

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/khanghh/shopdash/model"
	"gorm.io/gorm"
)

// NormalizeEmail lowercases the address; email uniqueness and lookup are
// case-insensitive by this normalization, username stays byte-exact.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, userID uint) (*model.User, error)
	ByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	ByVerificationToken(ctx context.Context, token string) (*model.User, error)
	Updates(ctx context.Context, userID uint, columns map[string]interface{}) error
	RecordFailedLogin(ctx context.Context, userID uint, now time.Time) error
	ResetFailedLogin(ctx context.Context, userID uint) error
	RecordLogin(ctx context.Context, userID uint, now time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return NewUserRepository(tx)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByIdentifier resolves a login identifier: anything that parses as an email
// address is looked up by email, everything else by username.
func (r *userRepository) ByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	var err error
	if _, mailErr := mail.ParseAddress(identifier); mailErr == nil {
		err = r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(identifier)).First(&user).Error
	} else {
		err = r.db.WithContext(ctx).Where("username = ?", identifier).First(&user).Error
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("password_reset_token = ?", token).
		Where("password_reset_expires > ?", now).
		Where("is_active = ?", true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email_verification_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Updates(ctx context.Context, userID uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(columns).Error
}

// RecordFailedLogin bumps the counter in one statement. Two near-simultaneous
// failures may still read the same count higher up; that tolerance is
// accepted, the increment itself is atomic.
func (r *userRepository) RecordFailedLogin(ctx context.Context, userID uint, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
		"last_failed_login":     now,
	}).Error
}

func (r *userRepository) ResetFailedLogin(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"last_failed_login":     nil,
	}).Error
}

func (r *userRepository) RecordLogin(ctx context.Context, userID uint, now time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login":  now,
		"login_count": gorm.Expr("login_count + 1"),
	}).Error
}
