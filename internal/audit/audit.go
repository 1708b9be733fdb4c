package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/khanghh/shopdash/model"
	"gorm.io/datatypes"
)

// Event action keys.
const (
	ActionLoginSuccess         = "login_success"
	ActionLoginFailure         = "login_failure"
	ActionLogout               = "logout"
	ActionOrphanLogout         = "logout_orphan_token"
	ActionRegister             = "register"
	ActionEmailVerified        = "email_verified"
	ActionPasswordChanged      = "password_changed"
	ActionPasswordResetReq     = "password_reset_requested"
	ActionPasswordResetDone    = "password_reset_completed"
	ActionSessionTerminated    = "session_terminated"
	ActionAllSessionsRevoked   = "all_sessions_revoked"
	ActionOtherSessionsRevoked = "other_sessions_revoked"
	ActionUserStatusToggled    = "user_status_toggled"
	ActionAdminStatusToggled   = "admin_status_toggled"
	ActionProfileUpdated       = "profile_updated"
	ActionSettingChanged       = "setting_changed"
)

// RequestInfo carries the request metadata the recorder attaches to every
// event. Handlers fill it in; the core never reads ambient request state.
type RequestInfo struct {
	IP        string
	UserAgent string
	Method    string
	URI       string
}

type LoginRecord struct {
	UserID     uint
	Identifier string
	Success    bool
	Reason     string
}

type SecurityRecord struct {
	UserID      uint
	Action      string
	Description string
	Metadata    map[string]any
}

type AdminActionRecord struct {
	AdminID     uint
	TargetID    uint
	Action      string
	Description string
}

type ProfileRecord struct {
	UserID      uint
	Action      string
	Description string
}

// Recorder writes activity events. Implementations must be safe for
// concurrent use; failures are the caller's to swallow.
type Recorder interface {
	Record(ctx context.Context, event *model.ActivityEvent) error
}

// Log wraps a Recorder with typed helpers. All helpers are best effort: a
// failed write goes to slog and never propagates to the caller.
type Log struct {
	recorder Recorder
}

func NewLog(recorder Recorder) *Log {
	return &Log{recorder: recorder}
}

func (l *Log) record(ctx context.Context, event *model.ActivityEvent, req RequestInfo) {
	event.IP = req.IP
	event.UserAgent = req.UserAgent
	event.Method = req.Method
	event.URI = req.URI
	event.RequestID = uuid.NewString()
	if err := l.recorder.Record(ctx, event); err != nil {
		slog.Error("Failed to record activity event", "action", event.Action, "error", err)
	}
}

func (l *Log) RecordLogin(ctx context.Context, rec LoginRecord, req RequestInfo) {
	action := ActionLoginFailure
	desc := "Login failed"
	if rec.Success {
		action = ActionLoginSuccess
		desc = "Login successful"
	}
	if rec.Reason != "" {
		desc += ": " + rec.Reason
	}
	metadata, _ := json.Marshal(map[string]any{"identifier": rec.Identifier})
	l.record(ctx, &model.ActivityEvent{
		UserID:      rec.UserID,
		Action:      action,
		Description: desc,
		Category:    model.CategoryAuth,
		Metadata:    datatypes.JSON(metadata),
	}, req)
}

func (l *Log) RecordSecurity(ctx context.Context, rec SecurityRecord, req RequestInfo) {
	var metadata datatypes.JSON
	if rec.Metadata != nil {
		raw, _ := json.Marshal(rec.Metadata)
		metadata = datatypes.JSON(raw)
	}
	l.record(ctx, &model.ActivityEvent{
		UserID:      rec.UserID,
		Action:      rec.Action,
		Description: rec.Description,
		Category:    model.CategorySecurity,
		Metadata:    metadata,
	}, req)
}

func (l *Log) RecordAdminAction(ctx context.Context, rec AdminActionRecord, req RequestInfo) {
	metadata, _ := json.Marshal(map[string]any{"admin_id": rec.AdminID, "target_id": rec.TargetID})
	l.record(ctx, &model.ActivityEvent{
		UserID:      rec.AdminID,
		Action:      rec.Action,
		Description: rec.Description,
		Category:    model.CategoryAdmin,
		Metadata:    datatypes.JSON(metadata),
	}, req)
}

func (l *Log) RecordProfile(ctx context.Context, rec ProfileRecord, req RequestInfo) {
	l.record(ctx, &model.ActivityEvent{
		UserID:      rec.UserID,
		Action:      rec.Action,
		Description: rec.Description,
		Category:    model.CategoryProfile,
	}, req)
}
