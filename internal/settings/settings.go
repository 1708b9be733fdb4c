package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/khanghh/shopdash/model"
	"github.com/spf13/cast"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting type tags. Values are stored as text; the tag controls coercion
// when the cache is loaded.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeJSON    = "json"
)

// Well-known keys read by the auth core.
const (
	KeyRegistrationEnabled       = "registration_enabled"
	KeyEmailVerificationRequired = "email_verification_required"
	KeyMaxLoginAttempts          = "max_login_attempts"
	KeyLockoutDuration           = "lockout_duration"
	KeySessionTimeout            = "session_timeout"
	KeyRememberMeDuration        = "remember_me_duration"
	KeySiteName                  = "site_name"
	KeyBaseURL                   = "base_url"
)

type defaultSetting struct {
	value       string
	settingType string
	description string
}

// defaults seed missing rows on startup and back Get* lookups for keys that
// were never written.
var defaults = map[string]defaultSetting{
	KeyRegistrationEnabled:       {"true", TypeBoolean, "Allow new account registration"},
	KeyEmailVerificationRequired: {"false", TypeBoolean, "Require email verification before login"},
	KeyMaxLoginAttempts:          {"5", TypeInteger, "Failed logins before lockout"},
	KeyLockoutDuration:           {"900", TypeInteger, "Lockout window in seconds"},
	KeySessionTimeout:            {"3600", TypeInteger, "Session lifetime in seconds"},
	KeyRememberMeDuration:        {"2592000", TypeInteger, "Remember-me session lifetime in seconds"},
	KeySiteName:                  {"shopdash", TypeString, "Site display name"},
	KeyBaseURL:                   {"http://localhost:3000", TypeString, "Public base URL for links in emails"},
}

// Store caches all system settings in process memory. The cache lives for
// the process lifetime; Set reloads it in the same call, and staleness
// across processes is tolerated.
type Store struct {
	db *gorm.DB

	mu     sync.RWMutex
	values map[string]any
}

func NewStore(db *gorm.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the cache with the current table contents.
func (s *Store) Reload(ctx context.Context) error {
	var rows []model.SystemSetting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	values := make(map[string]any, len(rows))
	for _, row := range rows {
		values[row.SettingKey] = coerce(row.SettingValue, row.SettingType)
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// SeedDefaults inserts any well-known setting that has no row yet, then
// reloads. Existing rows are left untouched.
func (s *Store) SeedDefaults(ctx context.Context) error {
	for key, def := range defaults {
		row := model.SystemSetting{
			SettingKey:   key,
			SettingValue: def.value,
			SettingType:  def.settingType,
			Description:  def.description,
		}
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "setting_key"}}, DoNothing: true}).
			Create(&row).Error
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return s.Reload(ctx)
}

func coerce(value, settingType string) any {
	switch settingType {
	case TypeBoolean:
		return cast.ToBool(value)
	case TypeInteger:
		return cast.ToInt(value)
	case TypeFloat:
		return cast.ToFloat64(value)
	case TypeJSON:
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return value
		}
		return decoded
	default:
		return value
	}
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *Store) GetString(key, def string) string {
	if val, ok := s.lookup(key); ok {
		return cast.ToString(val)
	}
	return def
}

func (s *Store) GetBool(key string, def bool) bool {
	if val, ok := s.lookup(key); ok {
		return cast.ToBool(val)
	}
	return def
}

func (s *Store) GetInt(key string, def int) int {
	if val, ok := s.lookup(key); ok {
		return cast.ToInt(val)
	}
	return def
}

func (s *Store) GetFloat(key string, def float64) float64 {
	if val, ok := s.lookup(key); ok {
		return cast.ToFloat64(val)
	}
	return def
}

// GetDuration reads an integer seconds-valued setting.
func (s *Store) GetDuration(key string, def time.Duration) time.Duration {
	if val, ok := s.lookup(key); ok {
		return time.Duration(cast.ToInt64(val)) * time.Second
	}
	return def
}

func (s *Store) GetJSON(key string, dest any) error {
	val, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("setting %s not found", key)
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set upserts a setting and reloads the cache so the write is visible to the
// request that made it.
func (s *Store) Set(ctx context.Context, key, value, settingType, description string) error {
	row := model.SystemSetting{
		SettingKey:   key,
		SettingValue: value,
		SettingType:  settingType,
		Description:  description,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_type", "description", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return s.Reload(ctx)
}

// All returns a snapshot of every row, for the admin settings page.
func (s *Store) All(ctx context.Context) ([]model.SystemSetting, error) {
	var rows []model.SystemSetting
	err := s.db.WithContext(ctx).Order("setting_key").Find(&rows).Error
	return rows, err
}
