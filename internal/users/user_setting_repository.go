package users

import (
	"context"

	"github.com/khanghh/shopdash/model"
	"gorm.io/gorm"
)

type UserSettingRepository interface {
	WithTx(tx *gorm.DB) UserSettingRepository
	Create(ctx context.Context, setting *model.UserSetting) error
	ByUser(ctx context.Context, userID uint) (*model.UserSetting, error)
	Updates(ctx context.Context, userID uint, columns map[string]interface{}) error
}

type userSettingRepository struct {
	db *gorm.DB
}

func NewUserSettingRepository(db *gorm.DB) UserSettingRepository {
	return &userSettingRepository{db: db}
}

func (r *userSettingRepository) WithTx(tx *gorm.DB) UserSettingRepository {
	return NewUserSettingRepository(tx)
}

func (r *userSettingRepository) Create(ctx context.Context, setting *model.UserSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *userSettingRepository) ByUser(ctx context.Context, userID uint) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *userSettingRepository) Updates(ctx context.Context, userID uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.UserSetting{}).
		Where("user_id = ?", userID).
		Updates(columns).Error
}
