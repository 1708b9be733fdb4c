package model

import "time"

// SystemSetting is a globally scoped, admin-editable configuration row.
// SettingValue is always stored as text; SettingType drives coercion on load.
type SystemSetting struct {
	ID           uint   `gorm:"primarykey"`
	SettingKey   string `gorm:"uniqueIndex;size:64;not null"`
	SettingValue string `gorm:"not null"`
	SettingType  string `gorm:"size:16;default:string;not null"`
	Description  string `gorm:"size:256"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSetting holds per-user dashboard preferences, one row per user,
// created with defaults at registration.
type UserSetting struct {
	ID                 uint   `gorm:"primarykey"`
	UserID             uint   `gorm:"uniqueIndex;not null"`
	Currency           string `gorm:"size:8;default:USD"`
	ItemsPerPage       int    `gorm:"default:25"`
	EmailNotifications bool   `gorm:"default:true"`
	StockAlerts        bool   `gorm:"default:true"`
	OrderAlerts        bool   `gorm:"default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
