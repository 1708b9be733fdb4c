package audit

import (
	"context"
	"testing"
	"time"

	"github.com/khanghh/shopdash/internal/storage"
	"github.com/khanghh/shopdash/model"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLogAttachesRequestMetadata(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := NewLog(NewActivityEventRepository(db))

	req := RequestInfo{IP: "10.0.0.1", UserAgent: "curl/8.5.0", Method: "POST", URI: "/login"}
	log.RecordLogin(ctx, LoginRecord{UserID: 1, Identifier: "alice", Success: true}, req)
	log.RecordLogin(ctx, LoginRecord{UserID: 1, Identifier: "alice", Reason: "wrong password"}, req)

	events, err := NewReader(db).ListByUser(ctx, 1, "", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, event := range events {
		if event.IP != "10.0.0.1" || event.Method != "POST" || event.URI != "/login" {
			t.Errorf("request metadata missing on %s: %+v", event.Action, event)
		}
		if event.RequestID == "" {
			t.Errorf("request id missing on %s", event.Action)
		}
		if event.Category != model.CategoryAuth {
			t.Errorf("category = %q, want %q", event.Category, model.CategoryAuth)
		}
	}
}

func TestListByUserFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := NewLog(NewActivityEventRepository(db))
	req := RequestInfo{IP: "10.0.0.1"}

	log.RecordSecurity(ctx, SecurityRecord{UserID: 1, Action: ActionPasswordChanged, Description: "Password changed"}, req)
	log.RecordProfile(ctx, ProfileRecord{UserID: 1, Action: ActionProfileUpdated, Description: "Profile updated"}, req)
	log.RecordProfile(ctx, ProfileRecord{UserID: 2, Action: ActionProfileUpdated, Description: "Profile updated"}, req)

	reader := NewReader(db)

	events, err := reader.ListByUser(ctx, 1, model.CategorySecurity, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].Action != ActionPasswordChanged {
		t.Fatalf("category filter: got %+v", events)
	}

	// other users' events never leak in
	events, _ = reader.ListByUser(ctx, 1, "", 0, 0)
	for _, event := range events {
		if event.UserID != 1 {
			t.Errorf("event for user %d in user 1's feed", event.UserID)
		}
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := NewLog(NewActivityEventRepository(db))

	log.RecordSecurity(ctx, SecurityRecord{UserID: 1, Action: ActionRegister, Description: "Account registered"}, RequestInfo{})

	// nothing is old enough yet
	count, err := NewReader(db).PurgeOlderThan(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if count != 0 {
		t.Errorf("purged %d events, want 0", count)
	}

	count, err = NewReader(db).PurgeOlderThan(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if count != 1 {
		t.Errorf("purged %d events, want 1", count)
	}
}
