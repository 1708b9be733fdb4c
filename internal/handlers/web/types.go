package web

import (
	"time"

	"github.com/khanghh/shopdash/model"
)

type APIResponse struct {
	Data any  `json:"data,omitempty"`
	OK   bool `json:"ok"`
}

func NewDataResponse(data any) APIResponse {
	return APIResponse{OK: true, Data: data}
}

type UserInfoResponse struct {
	UserID        uint       `json:"userId"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      string     `json:"fullName"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         string     `json:"phone,omitempty"`
	Timezone      string     `json:"timezone"`
	Language      string     `json:"language"`
	IsAdmin       bool       `json:"isAdmin"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

func NewUserInfoResponse(user *model.User) UserInfoResponse {
	return UserInfoResponse{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName(),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Phone:         user.Phone,
		Timezone:      user.Timezone,
		Language:      user.Language,
		IsAdmin:       user.IsAdmin,
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
	}
}

type SessionInfoResponse struct {
	SessionID    uint      `json:"sessionId"`
	Browser      string    `json:"browser"`
	OS           string    `json:"os"`
	IsMobile     bool      `json:"isMobile"`
	IP           string    `json:"ip"`
	Current      bool      `json:"current"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func NewSessionInfoResponse(session *model.Session, currentID uint) SessionInfoResponse {
	return SessionInfoResponse{
		SessionID:    session.ID,
		Browser:      session.Browser,
		OS:           session.OS,
		IsMobile:     session.IsMobile,
		IP:           session.IP,
		Current:      session.ID == currentID,
		CreatedAt:    session.CreatedAt,
		LastActivity: session.LastActivity,
		ExpiresAt:    session.ExpiresAt,
	}
}
