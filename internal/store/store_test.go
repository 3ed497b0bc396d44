package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"raidboard/internal/model"
)

func TestMemoryRaidStoreRoundTrip(t *testing.T) {
	s := NewMemoryRaidStore(time.Hour)
	ctx := context.Background()

	raid := model.NewRaid()
	raid.Boss = &model.Entity{Name: "Pikachu"}
	raid.Gym = &model.Entity{Name: "Central Park"}
	raid.Hangout = &model.DayTime{Hour: 18, Minute: 30}
	raid.AddParticipant(1, "ash")
	raid.ToggleFlyer(2, "misty")
	raid.Rendered = &model.MessageRef{RoomID: -100, MessageID: 42}

	if err := s.Put(ctx, raid); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	got, err := s.Get(ctx, raid.Code)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Code != raid.Code {
		t.Fatalf("code: got %s want %s", got.Code, raid.Code)
	}
	if got.Boss == nil || got.Boss.Name != "Pikachu" {
		t.Fatalf("boss not round-tripped: %+v", got.Boss)
	}
	if got.Gym == nil || got.Gym.Name != "Central Park" {
		t.Fatalf("gym not round-tripped: %+v", got.Gym)
	}
	if got.Hangout == nil || got.Hangout.Hour != 18 || got.Hangout.Minute != 30 {
		t.Fatalf("hangout not round-tripped: %+v", got.Hangout)
	}
	if len(got.Participants) != 2 {
		t.Fatalf("participants: got %d want 2", len(got.Participants))
	}
	if got.Participants[1].Role != model.RoleFlyer {
		t.Fatalf("flyer role not round-tripped: %+v", got.Participants[1])
	}
	if got.Rendered == nil || got.Rendered.MessageID != 42 {
		t.Fatalf("rendered ref not round-tripped: %+v", got.Rendered)
	}
}

func TestMemoryRaidStoreExpiry(t *testing.T) {
	s := NewMemoryRaidStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	raid := model.NewRaid()
	if err := s.Put(ctx, raid); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	s.now = func() time.Time { return base.Add(59 * time.Minute) }
	if _, err := s.Get(ctx, raid.Code); err != nil {
		t.Fatalf("Get before expiry err: %v", err)
	}

	s.now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, err := s.Get(ctx, raid.Code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after expiry: got %v want ErrNotFound", err)
	}
}

func TestMemoryRaidStorePutRefreshesTTL(t *testing.T) {
	s := NewMemoryRaidStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	raid := model.NewRaid()
	if err := s.Put(ctx, raid); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	// Rewrite near the end of the first window; the countdown restarts.
	s.now = func() time.Time { return base.Add(50 * time.Minute) }
	if err := s.Put(ctx, raid); err != nil {
		t.Fatalf("second Put err: %v", err)
	}

	s.now = func() time.Time { return base.Add(100 * time.Minute) }
	if _, err := s.Get(ctx, raid.Code); err != nil {
		t.Fatalf("Get after refresh err: %v", err)
	}
}

func TestMemoryRaidStoreGetMiss(t *testing.T) {
	s := NewMemoryRaidStore(time.Hour)
	if _, err := s.Get(context.Background(), "nosuchcd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestDecodeRaidRejectsUnknownVersion(t *testing.T) {
	if _, err := decodeRaid([]byte(`{"version":99,"code":"abcd1234"}`)); err == nil {
		t.Fatal("expected error for unknown encoding version")
	}
}

func TestAdminSetSuperAdmin(t *testing.T) {
	ctx := context.Background()
	admins, err := NewAdminSet(ctx, NewMemoryKeyedSet(), 7)
	if err != nil {
		t.Fatalf("NewAdminSet err: %v", err)
	}

	ok, err := admins.Contains(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("super admin not seeded: ok=%v err=%v", ok, err)
	}

	if err := admins.Remove(ctx, 7); !errors.Is(err, ErrSuperAdmin) {
		t.Fatalf("remove super admin: got %v want ErrSuperAdmin", err)
	}

	if err := admins.Add(ctx, 8, "helper"); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if err := admins.Remove(ctx, 8); err != nil {
		t.Fatalf("Remove err: %v", err)
	}
	ok, _ = admins.Contains(ctx, 8)
	if ok {
		t.Fatal("removed admin still present")
	}
}
