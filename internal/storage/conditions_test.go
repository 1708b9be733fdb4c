package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/khanghh/shopdash/model"
)

func TestCompileConditions(t *testing.T) {
	tests := []struct {
		name     string
		conds    []Cond
		want     string
		wantArgs int
		wantErr  bool
	}{
		{
			name:     "implicit equality",
			conds:    []Cond{Eq("is_active", true)},
			want:     "is_active = ?",
			wantArgs: 1,
		},
		{
			name:     "explicit operator from key",
			conds:    []Cond{Where("failed_login_attempts >=", 5)},
			want:     "failed_login_attempts >= ?",
			wantArgs: 1,
		},
		{
			name:     "multiple conditions joined with AND",
			conds:    []Cond{Eq("user_id", 1), Where("expires_at >", "2026-01-01")},
			want:     "user_id = ? AND expires_at > ?",
			wantArgs: 2,
		},
		{
			name:     "IN expands placeholders",
			conds:    []Cond{Where("category IN", []string{"auth", "security", "admin"})},
			want:     "category IN (?,?,?)",
			wantArgs: 3,
		},
		{
			name:     "IS NULL takes no parameter",
			conds:    []Cond{Where("last_failed_login IS", nil)},
			want:     "last_failed_login IS NULL",
			wantArgs: 0,
		},
		{
			name:     "IS NOT NULL",
			conds:    []Cond{Where("password_reset_token IS NOT", nil)},
			want:     "password_reset_token IS NOT NULL",
			wantArgs: 0,
		},
		{
			name:    "empty IN list rejected",
			conds:   []Cond{Where("id IN", []int{})},
			wantErr: true,
		},
		{
			name:    "IS with non-null value rejected",
			conds:   []Cond{Where("id IS", 5)},
			wantErr: true,
		},
		{
			name:    "operator outside whitelist rejected",
			conds:   []Cond{{Column: "id", Op: "BETWEEN", Value: 1}},
			wantErr: true,
		},
		{
			name:    "injection through column name rejected",
			conds:   []Cond{Eq("id; DROP TABLE user", 1)},
			wantErr: true,
		},
		{
			name:    "injection through operator case rejected",
			conds:   []Cond{{Column: "id", Op: "= 1 OR 1", Value: 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args, err := CompileConditions(tt.conds)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got clause %q", clause)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if clause != tt.want {
				t.Errorf("clause = %q, want %q", clause, tt.want)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestCountRejectsBadTable(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := Count(context.Background(), db, "user; --"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCountAgainstDatabase(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := []model.User{
		{Username: "alice", Email: "alice@x.com", Password: "h", IsActive: true},
		{Username: "bob", Email: "bob@x.com", Password: "h", IsActive: true, FailedLoginAttempts: 5},
		{Username: "carol", Email: "carol@x.com", Password: "h"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	// the default:true tag makes Create drop a false is_active, so carol has
	// to be deactivated with an explicit update
	if err := db.Model(&model.User{}).Where("username = ?", "carol").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate carol: %v", err)
	}

	ctx := context.Background()

	total, err := Count(ctx, db, "user")
	if err != nil {
		t.Fatalf("count all: %v", err)
	}
	if total != 3 {
		t.Errorf("count all = %d, want 3", total)
	}

	active, err := Count(ctx, db, "user", Eq("is_active", true))
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if active != 2 {
		t.Errorf("count active = %d, want 2", active)
	}

	locked, err := Count(ctx, db, "user", Where("failed_login_attempts >=", 5), Eq("is_active", true))
	if err != nil {
		t.Fatalf("count locked: %v", err)
	}
	if locked != 1 {
		t.Errorf("count locked = %d, want 1", locked)
	}

	named, err := Count(ctx, db, "user", Where("username IN", []string{"alice", "bob"}))
	if err != nil {
		t.Fatalf("count named: %v", err)
	}
	if named != 2 {
		t.Errorf("count named = %d, want 2", named)
	}

	noReset, err := Count(ctx, db, "user", Where("password_reset_expires IS", nil))
	if err != nil {
		t.Fatalf("count no reset: %v", err)
	}
	if noReset != 3 {
		t.Errorf("count no reset = %d, want 3", noReset)
	}
}
