package model

import "time"

// Session is one logged-in browser. SessionToken is the only value the client
// ever holds (in the cookie); it is compared in full and never logged in full.
// RefreshToken is persisted for remember-me sessions but has no exchange
// endpoint yet; treat it as reserved.
type Session struct {
	ID           uint   `gorm:"primarykey"`
	UserID       uint   `gorm:"index;not null"`
	SessionToken string `gorm:"uniqueIndex;size:64;not null" json:"-"`
	RefreshToken string `gorm:"size:64" json:"-"`
	IP           string `gorm:"size:45"`
	UserAgent    string `gorm:"size:512"`
	Browser      string `gorm:"size:32"`
	OS           string `gorm:"size:32"`
	IsMobile     bool
	IsActive     bool      `gorm:"default:true;not null"`
	ExpiresAt    time.Time `gorm:"index;not null"`
	LastActivity time.Time
	CreatedAt    time.Time
}
