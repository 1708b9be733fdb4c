package settings

import (
	"context"
	"testing"
	"time"

	"github.com/khanghh/shopdash/internal/storage"
	"github.com/khanghh/shopdash/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestCoercion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []struct{ key, value, typ string }{
		{"flag_true", "true", TypeBoolean},
		{"flag_one", "1", TypeBoolean},
		{"flag_off", "false", TypeBoolean},
		{"attempts", "7", TypeInteger},
		{"ratio", "0.25", TypeFloat},
		{"name", "My Shop", TypeString},
		{"widgets", `["orders","stock"]`, TypeJSON},
	}
	for _, row := range seed {
		if err := store.Set(ctx, row.key, row.value, row.typ, ""); err != nil {
			t.Fatalf("set %s: %v", row.key, err)
		}
	}

	if !store.GetBool("flag_true", false) || !store.GetBool("flag_one", false) {
		t.Error("truthy strings should coerce to true")
	}
	if store.GetBool("flag_off", true) {
		t.Error("false should coerce to false")
	}
	if got := store.GetInt("attempts", 0); got != 7 {
		t.Errorf("GetInt = %d, want 7", got)
	}
	if got := store.GetFloat("ratio", 0); got != 0.25 {
		t.Errorf("GetFloat = %v, want 0.25", got)
	}
	if got := store.GetString("name", ""); got != "My Shop" {
		t.Errorf("GetString = %q", got)
	}
	var widgets []string
	if err := store.GetJSON("widgets", &widgets); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(widgets) != 2 || widgets[0] != "orders" {
		t.Errorf("GetJSON = %v", widgets)
	}
}

func TestDefaultsForUnknownKeys(t *testing.T) {
	store := newTestStore(t)

	if got := store.GetInt("no_such_key", 42); got != 42 {
		t.Errorf("GetInt default = %d, want 42", got)
	}
	if got := store.GetString("no_such_key", "fallback"); got != "fallback" {
		t.Errorf("GetString default = %q", got)
	}
	if got := store.GetDuration("no_such_key", time.Minute); got != time.Minute {
		t.Errorf("GetDuration default = %v", got)
	}
}

func TestSetReloadsCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, KeyMaxLoginAttempts, "3", TypeInteger, ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := store.GetInt(KeyMaxLoginAttempts, 5); got != 3 {
		t.Errorf("after set, GetInt = %d, want 3", got)
	}

	// overwrite through the same upsert path
	if err := store.Set(ctx, KeyMaxLoginAttempts, "10", TypeInteger, ""); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := store.GetInt(KeyMaxLoginAttempts, 5); got != 10 {
		t.Errorf("after overwrite, GetInt = %d, want 10", got)
	}
}

func TestSeedDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// pre-set one key; the seed must not clobber it
	if err := store.Set(ctx, KeyMaxLoginAttempts, "3", TypeInteger, ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if got := store.GetInt(KeyMaxLoginAttempts, 0); got != 3 {
		t.Errorf("seed overwrote existing row: got %d, want 3", got)
	}
	if got := store.GetInt(KeyLockoutDuration, 0); got != 900 {
		t.Errorf("seeded lockout_duration = %d, want 900", got)
	}
	if !store.GetBool(KeyRegistrationEnabled, false) {
		t.Error("registration_enabled should seed to true")
	}
	if got := store.GetDuration(KeySessionTimeout, 0); got != time.Hour {
		t.Errorf("session_timeout = %v, want 1h", got)
	}
}
