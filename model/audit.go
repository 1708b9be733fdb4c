package model

import (
	"time"

	"gorm.io/datatypes"
)

// Event categories.
const (
	CategoryAuth     = "auth"
	CategorySecurity = "security"
	CategoryAdmin    = "admin"
	CategoryProfile  = "profile"
)

// ActivityEvent is an append-only audit record. UserID 0 marks anonymous or
// system events. Rows are never mutated; only retention cleanup deletes them.
type ActivityEvent struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint   `gorm:"index;not null"`
	Action      string `gorm:"size:64;not null;index"`
	Description string `gorm:"size:512"`
	Category    string `gorm:"size:32;index"`
	IP          string `gorm:"size:45"`
	UserAgent   string `gorm:"size:512"`
	Method      string `gorm:"size:8"`
	URI         string `gorm:"size:512"`
	RequestID   string `gorm:"size:36"`
	Metadata    datatypes.JSON
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (ActivityEvent) TableName() string {
	return "activity_log"
}
