package model

import (
	"time"

	"gorm.io/gorm"
)

// User stores a dashboard account. Password holds the bcrypt hash, never the
// plaintext. Email is normalized to lower case before insert and is not
// editable once the account exists.
type User struct {
	ID                     uint   `gorm:"primarykey"`
	Username               string `gorm:"uniqueIndex;size:50;not null"`
	Email                  string `gorm:"uniqueIndex;size:256;not null"`
	Password               string `gorm:"size:128;not null" json:"-"`
	FirstName              string `gorm:"size:64"`
	LastName               string `gorm:"size:64"`
	Phone                  string `gorm:"size:32"`
	Timezone               string `gorm:"size:64;default:UTC"`
	Language               string `gorm:"size:8;default:en"`
	IsActive               bool   `gorm:"default:true;not null"`
	IsAdmin                bool   `gorm:"default:false;not null"`
	EmailVerified          bool   `gorm:"default:false;not null"`
	EmailVerificationToken string `gorm:"size:64" json:"-"`
	PasswordResetToken     string `gorm:"size:64" json:"-"`
	PasswordResetExpires   *time.Time
	FailedLoginAttempts    int `gorm:"default:0;not null"`
	LastFailedLogin        *time.Time
	LastLogin              *time.Time
	LoginCount             int `gorm:"default:0;not null"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}

// Sanitize returns a copy safe to hand to callers outside the auth core:
// the password hash and pending tokens are stripped.
func (u *User) Sanitize() *User {
	c := *u
	c.Password = ""
	c.EmailVerificationToken = ""
	c.PasswordResetToken = ""
	return &c
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
