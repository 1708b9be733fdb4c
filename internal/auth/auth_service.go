package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/khanghh/shopdash/internal/audit"
	"github.com/khanghh/shopdash/internal/common"
	"github.com/khanghh/shopdash/internal/mail"
	"github.com/khanghh/shopdash/internal/settings"
	"github.com/khanghh/shopdash/internal/storage"
	"github.com/khanghh/shopdash/internal/users"
	"github.com/khanghh/shopdash/model"
	"github.com/khanghh/shopdash/params"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Timezone  string
	Language  string
}

// AuthService is the session and credential core. All methods take explicit
// request metadata; nothing in here reads ambient request state.
type AuthService struct {
	db           *gorm.DB
	userRepo     users.UserRepository
	sessionRepo  users.SessionRepository
	settingRepo  users.UserSettingRepository
	sysSettings  *settings.Store
	auditLog     *audit.Log
	activity     *audit.Reader
	mailSender   mail.MailSender

	now func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	userRepo users.UserRepository,
	sessionRepo users.SessionRepository,
	settingRepo users.UserSettingRepository,
	sysSettings *settings.Store,
	auditLog *audit.Log,
	activity *audit.Reader,
	mailSender mail.MailSender) *AuthService {
	return &AuthService{
		db:          db,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		settingRepo: settingRepo,
		sysSettings: sysSettings,
		auditLog:    auditLog,
		activity:    activity,
		mailSender:  mailSender,
		now:         time.Now,
	}
}

func (s *AuthService) verificationRequired() bool {
	return s.sysSettings.GetBool(settings.KeyEmailVerificationRequired, false)
}

func (s *AuthService) baseURL() string {
	return strings.TrimRight(s.sysSettings.GetString(settings.KeyBaseURL, "http://localhost:3000"), "/")
}

// classifyConflict resolves which unique field collided. The translated
// duplicate-key error is a bare sentinel with no column information, so the
// colliding row is looked up directly.
func (s *AuthService) classifyConflict(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.ByIdentifier(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	if _, err := s.userRepo.ByEmail(ctx, email); err == nil {
		return ErrEmailRegistered
	}
	return ErrConflict
}

// Register creates an account plus its default preferences row in one
// transaction. The unique indexes on username and email are the
// authoritative conflict guard; there is no pre-check to race against.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, reqInfo audit.RequestInfo) (*model.User, error) {
	if !s.sysSettings.GetBool(settings.KeyRegistrationEnabled, true) {
		return nil, ErrRegistrationClosed
	}
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:  req.Username,
		Email:     users.NormalizeEmail(req.Email),
		Password:  string(passwordHash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Timezone:  "UTC",
		Language:  "en",
		IsActive:  true,
	}
	if s.verificationRequired() {
		user.EmailVerificationToken = common.MustGenerateToken()
	}

	err = storage.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, &user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		prefs := model.UserSetting{
			UserID:             user.ID,
			Currency:           "USD",
			ItemsPerPage:       25,
			EmailNotifications: true,
			StockAlerts:        true,
			OrderAlerts:        true,
		}
		if err := s.settingRepo.WithTx(tx).Create(ctx, &prefs); err != nil {
			return fmt.Errorf("create user settings: %w", err)
		}
		return nil
	})
	if err != nil {
		if storage.IsDuplicateKey(err) {
			return nil, s.classifyConflict(ctx, user.Username, user.Email)
		}
		return nil, err
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      user.ID,
		Action:      audit.ActionRegister,
		Description: "Account registered",
	}, reqInfo)

	if user.EmailVerificationToken != "" {
		verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL(), user.EmailVerificationToken)
		s.dispatchMail(user.Email, func(to string) error {
			return mail.SendVerificationEmail(s.mailSender, to, verifyURL)
		})
	}
	return user.Sanitize(), nil
}

// dispatchMail sends out of band. Delivery never gates the response and a
// failure only reaches the log.
func (s *AuthService) dispatchMail(to string, send func(to string) error) {
	go func() {
		if err := send(to); err != nil {
			slog.Error("Failed to send mail", "to", to, "error", err)
		}
	}()
}

func (s *AuthService) isLocked(user *model.User, now time.Time) bool {
	maxAttempts := s.sysSettings.GetInt(settings.KeyMaxLoginAttempts, 5)
	lockout := s.sysSettings.GetDuration(settings.KeyLockoutDuration, 15*time.Minute)
	return user.FailedLoginAttempts >= maxAttempts &&
		user.LastFailedLogin != nil &&
		now.Before(user.LastFailedLogin.Add(lockout))
}

// Login verifies credentials and issues a session. The step order is load
// bearing: lockout is checked before the password so a locked account stays
// locked even on a correct guess, and lookup misses report the same error as
// password misses.
func (s *AuthService) Login(ctx context.Context, identifier, password string, rememberMe bool, reqInfo audit.RequestInfo) (*model.User, *model.Session, error) {
	now := s.now()

	user, err := s.userRepo.ByIdentifier(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.auditLog.RecordLogin(ctx, audit.LoginRecord{Identifier: identifier, Reason: "unknown identifier"}, reqInfo)
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}

	if s.isLocked(user, now) {
		s.auditLog.RecordLogin(ctx, audit.LoginRecord{UserID: user.ID, Identifier: identifier, Reason: "account locked"}, reqInfo)
		return nil, nil, ErrAccountLocked
	}

	if !user.IsActive {
		s.auditLog.RecordLogin(ctx, audit.LoginRecord{UserID: user.ID, Identifier: identifier, Reason: "account disabled"}, reqInfo)
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if err := s.userRepo.RecordFailedLogin(ctx, user.ID, now); err != nil {
			slog.Error("Failed to record failed login", "user", user.ID, "error", err)
		}
		s.auditLog.RecordLogin(ctx, audit.LoginRecord{UserID: user.ID, Identifier: identifier, Reason: "wrong password"}, reqInfo)
		return nil, nil, ErrInvalidCredentials
	}

	if s.verificationRequired() && !user.EmailVerified {
		s.auditLog.RecordLogin(ctx, audit.LoginRecord{UserID: user.ID, Identifier: identifier, Reason: "email not verified"}, reqInfo)
		return nil, nil, ErrEmailNotVerified
	}

	if err := s.userRepo.ResetFailedLogin(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("reset failed logins: %w", err)
	}

	session, err := s.createSession(ctx, user.ID, rememberMe, reqInfo)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		slog.Error("Failed to record login bookkeeping", "user", user.ID, "error", err)
	}

	s.auditLog.RecordLogin(ctx, audit.LoginRecord{UserID: user.ID, Identifier: identifier, Success: true}, reqInfo)
	return user.Sanitize(), session, nil
}

func (s *AuthService) createSession(ctx context.Context, userID uint, rememberMe bool, reqInfo audit.RequestInfo) (*model.Session, error) {
	now := s.now()
	lifetime := s.sysSettings.GetDuration(settings.KeySessionTimeout, time.Hour)
	if rememberMe {
		lifetime = s.sysSettings.GetDuration(settings.KeyRememberMeDuration, 30*24*time.Hour)
	}

	browser, osName, mobile := classifyUserAgent(reqInfo.UserAgent)
	session := model.Session{
		UserID:       userID,
		SessionToken: common.MustGenerateToken(),
		IP:           reqInfo.IP,
		UserAgent:    reqInfo.UserAgent,
		Browser:      browser,
		OS:           osName,
		IsMobile:     mobile,
		IsActive:     true,
		ExpiresAt:    now.Add(lifetime),
		LastActivity: now,
	}
	if rememberMe {
		// reserved for a future refresh exchange; stored, never issued
		session.RefreshToken = common.MustGenerateToken()
	}

	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

func isHexToken(token string) bool {
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// GetCurrentUser resolves the session cookie value. A nil user with nil
// error means "not logged in"; absent, malformed, stale and revoked tokens
// all land there. Validity is exactly: token row exists, session active,
// not expired, owning user active. Only last_activity moves on a hit;
// expires_at stays fixed from creation.
func (s *AuthService) GetCurrentUser(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, nil
	}
	now := s.now()

	if len(token) != params.SessionTokenLength || !isHexToken(token) {
		// tampered cookie: drop whatever it points at and treat as anonymous
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			slog.Error("Failed to delete tampered session token", "token", common.TokenPrefix(token), "error", err)
		}
		return nil, nil, nil
	}

	session, err := s.sessionRepo.ValidByToken(ctx, token, now)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			slog.Error("Failed to delete stale session", "token", common.TokenPrefix(token), "error", err)
		}
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve session: %w", err)
	}

	if err := s.sessionRepo.TouchActivity(ctx, session.ID, now); err != nil {
		slog.Error("Failed to update session activity", "session", session.ID, "error", err)
	}
	session.LastActivity = now

	user, err := s.userRepo.ByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("load session user: %w", err)
	}
	return user.Sanitize(), session, nil
}

// Logout deletes the session behind token. Idempotent: an empty or already
// removed token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string, reqInfo audit.RequestInfo) error {
	if token == "" {
		return nil
	}

	session, err := s.sessionRepo.ByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
			Action:      audit.ActionOrphanLogout,
			Description: "Logout with a token matching no session",
			Metadata:    map[string]any{"token_prefix": common.TokenPrefix(token)},
		}, reqInfo)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}

	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      session.UserID,
		Action:      audit.ActionLogout,
		Description: "Logged out",
	}, reqInfo)
	return nil
}

// LogoutAllSessions removes every session the user has, current one included.
func (s *AuthService) LogoutAllSessions(ctx context.Context, userID uint, reqInfo audit.RequestInfo) (int64, error) {
	removed, err := s.sessionRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      userID,
		Action:      audit.ActionAllSessionsRevoked,
		Description: "All sessions signed out",
		Metadata:    map[string]any{"count": removed},
	}, reqInfo)
	return removed, nil
}

// LogoutOtherSessions removes every session of the user except the one
// behind keepToken; self-service "sign out everywhere else".
func (s *AuthService) LogoutOtherSessions(ctx context.Context, userID uint, keepToken string, reqInfo audit.RequestInfo) (int64, error) {
	removed, err := s.sessionRepo.DeleteByUserExcept(ctx, userID, keepToken)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      userID,
		Action:      audit.ActionOtherSessionsRevoked,
		Description: "All other sessions signed out",
		Metadata:    map[string]any{"count": removed},
	}, reqInfo)
	return removed, nil
}

// RequireAuth resolves the token and fails with ErrUnauthenticated when it
// does not map to a live session. How that surfaces (redirect vs. API error)
// is the caller's concern.
func (s *AuthService) RequireAuth(ctx context.Context, token string) (*model.User, *model.Session, error) {
	user, session, err := s.GetCurrentUser(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnauthenticated
	}
	return user, session, nil
}

func (s *AuthService) RequireAdmin(ctx context.Context, token string) (*model.User, *model.Session, error) {
	user, session, err := s.RequireAuth(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsAdmin {
		return nil, nil, ErrForbidden
	}
	return user, session, nil
}

// ChangePassword re-hashes after verifying the current password, then signs
// out every other session. keepToken preserves the caller's own session;
// empty (no session context, e.g. admin-driven) invalidates all of them.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword, keepToken string, reqInfo audit.RequestInfo) error {
	user, err := s.userRepo.ByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.Updates(ctx, userID, map[string]interface{}{"password": string(passwordHash)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if keepToken != "" {
		_, err = s.sessionRepo.DeleteByUserExcept(ctx, userID, keepToken)
	} else {
		_, err = s.sessionRepo.DeleteByUser(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      userID,
		Action:      audit.ActionPasswordChanged,
		Description: "Password changed",
	}, reqInfo)
	return nil
}

// RequestPasswordReset never reveals whether the address exists: the nil
// return is unconditional, writes and mail happen only for a real active
// account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string, reqInfo audit.RequestInfo) error {
	user, err := s.userRepo.ByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return nil
	}

	token := common.MustGenerateToken()
	expires := s.now().Add(params.PasswordResetExpiration)
	err = s.userRepo.Updates(ctx, user.ID, map[string]interface{}{
		"password_reset_token":   token,
		"password_reset_expires": expires,
	})
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL(), token)
	s.dispatchMail(user.Email, func(to string) error {
		return mail.SendPasswordResetEmail(s.mailSender, to, resetURL)
	})

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      user.ID,
		Action:      audit.ActionPasswordResetReq,
		Description: "Password reset requested",
	}, reqInfo)
	return nil
}

// ResetPassword consumes a reset token. The requester holds no session at
// this point, so every session of the account is invalidated.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string, reqInfo audit.RequestInfo) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	user, err := s.userRepo.ByResetToken(ctx, token, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.userRepo.Updates(ctx, user.ID, map[string]interface{}{
		"password":               string(passwordHash),
		"password_reset_token":   "",
		"password_reset_expires": nil,
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if _, err := s.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      user.ID,
		Action:      audit.ActionPasswordResetDone,
		Description: "Password reset completed",
	}, reqInfo)
	return nil
}

// VerifyEmail consumes a verification token. The token has no expiry; only
// an exact match clears it.
func (s *AuthService) VerifyEmail(ctx context.Context, token string, reqInfo audit.RequestInfo) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	user, err := s.userRepo.ByVerificationToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidOrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("lookup verification token: %w", err)
	}

	err = s.userRepo.Updates(ctx, user.ID, map[string]interface{}{
		"email_verified":           true,
		"email_verification_token": "",
	})
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      user.ID,
		Action:      audit.ActionEmailVerified,
		Description: "Email address verified",
	}, reqInfo)
	return nil
}

// GetUserSessions lists a user's sessions for display; tokens are blanked
// before the slice leaves the core.
func (s *AuthService) GetUserSessions(ctx context.Context, userID uint) ([]model.Session, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for i := range sessions {
		sessions[i].SessionToken = ""
		sessions[i].RefreshToken = ""
	}
	return sessions, nil
}

// TerminateSession deletes one session after verifying it belongs to userID.
func (s *AuthService) TerminateSession(ctx context.Context, userID, sessionID uint, reqInfo audit.RequestInfo) error {
	session, err := s.sessionRepo.ByID(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}
	if session.UserID != userID {
		return ErrForbidden
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.auditLog.RecordSecurity(ctx, audit.SecurityRecord{
		UserID:      userID,
		Action:      audit.ActionSessionTerminated,
		Description: "Session terminated",
		Metadata:    map[string]any{"session_id": sessionID},
	}, reqInfo)
	return nil
}

func (s *AuthService) GetUserActivity(ctx context.Context, userID uint, category string, limit, offset int) ([]model.ActivityEvent, error) {
	return s.activity.ListByUser(ctx, userID, category, limit, offset)
}

// ToggleUserStatus flips is_active. Deactivation force-logs-out every
// session of the target.
func (s *AuthService) ToggleUserStatus(ctx context.Context, adminID, targetID uint, reqInfo audit.RequestInfo) (*model.User, error) {
	target, err := s.userRepo.ByID(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	newState := !target.IsActive
	if err := s.userRepo.Updates(ctx, targetID, map[string]interface{}{"is_active": newState}); err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	if !newState {
		if _, err := s.sessionRepo.DeleteByUser(ctx, targetID); err != nil {
			return nil, fmt.Errorf("invalidate sessions: %w", err)
		}
	}

	desc := "Account deactivated"
	if newState {
		desc = "Account activated"
	}
	s.auditLog.RecordAdminAction(ctx, audit.AdminActionRecord{
		AdminID:     adminID,
		TargetID:    targetID,
		Action:      audit.ActionUserStatusToggled,
		Description: desc,
	}, reqInfo)

	target.IsActive = newState
	return target.Sanitize(), nil
}

func (s *AuthService) ToggleAdminStatus(ctx context.Context, adminID, targetID uint, reqInfo audit.RequestInfo) (*model.User, error) {
	target, err := s.userRepo.ByID(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	newState := !target.IsAdmin
	if err := s.userRepo.Updates(ctx, targetID, map[string]interface{}{"is_admin": newState}); err != nil {
		return nil, fmt.Errorf("toggle admin: %w", err)
	}

	desc := "Admin role revoked"
	if newState {
		desc = "Admin role granted"
	}
	s.auditLog.RecordAdminAction(ctx, audit.AdminActionRecord{
		AdminID:     adminID,
		TargetID:    targetID,
		Action:      audit.ActionAdminStatusToggled,
		Description: desc,
	}, reqInfo)

	target.IsAdmin = newState
	return target.Sanitize(), nil
}

// UpdateProfile mutates only the editable profile fields; username and email
// stay as registered.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate, reqInfo audit.RequestInfo) error {
	columns := map[string]interface{}{
		"first_name": update.FirstName,
		"last_name":  update.LastName,
		"phone":      update.Phone,
	}
	if update.Timezone != "" {
		columns["timezone"] = update.Timezone
	}
	if update.Language != "" {
		columns["language"] = update.Language
	}
	if err := s.userRepo.Updates(ctx, userID, columns); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.auditLog.RecordProfile(ctx, audit.ProfileRecord{
		UserID:      userID,
		Action:      audit.ActionProfileUpdated,
		Description: "Profile updated",
	}, reqInfo)
	return nil
}

// UpdateSystemSetting writes one system setting and records which admin
// changed it.
func (s *AuthService) UpdateSystemSetting(ctx context.Context, adminID uint, key, value, settingType, description string, reqInfo audit.RequestInfo) error {
	if err := s.sysSettings.Set(ctx, key, value, settingType, description); err != nil {
		return err
	}
	s.auditLog.RecordAdminAction(ctx, audit.AdminActionRecord{
		AdminID:     adminID,
		Action:      audit.ActionSettingChanged,
		Description: fmt.Sprintf("Setting %s changed", key),
	}, reqInfo)
	return nil
}

// CleanupExpiredSessions is the periodic sweep; main runs it on a ticker.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}
