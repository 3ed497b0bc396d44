package gate

import (
	"context"
	"testing"

	"raidboard/internal/store"
)

func recordingPredicate(invoked *bool, allow bool) Predicate {
	return func(context.Context, Origin) bool {
		*invoked = true
		return allow
	}
}

func TestAllOfShortCircuits(t *testing.T) {
	ctx := context.Background()
	origin := Origin{RoomID: -100, UserID: 5}

	// The sender would pass the second check, but the room check runs
	// first and denies, so the second predicate must never be invoked.
	rooms := store.NewMemoryKeyedSet()
	var adminChecked bool

	chain := AllOf(RoomEnabled(rooms), recordingPredicate(&adminChecked, true))

	if chain(ctx, origin) {
		t.Fatal("chain allowed a disabled room")
	}
	if adminChecked {
		t.Fatal("later predicate ran after an earlier deny")
	}
}

func TestAllOfOrderAndAllow(t *testing.T) {
	ctx := context.Background()
	origin := Origin{RoomID: -100, UserID: 5}

	rooms := store.NewMemoryKeyedSet()
	if err := rooms.Add(ctx, -100, ""); err != nil {
		t.Fatalf("Add err: %v", err)
	}

	var second bool
	chain := AllOf(RoomEnabled(rooms), recordingPredicate(&second, true))

	if !chain(ctx, origin) {
		t.Fatal("chain denied an enabled room")
	}
	if !second {
		t.Fatal("second predicate not reached after first allow")
	}
}

func TestRoomAdminPrivateRoomPasses(t *testing.T) {
	called := false
	p := RoomAdmin(func(context.Context, int64, int64) (bool, error) {
		called = true
		return false, nil
	})

	if !p(context.Background(), Origin{RoomID: 5, UserID: 5, Private: true}) {
		t.Fatal("private room denied")
	}
	if called {
		t.Fatal("admin lookup ran for a private room")
	}
}

func TestRoomAdminLookup(t *testing.T) {
	p := RoomAdmin(func(_ context.Context, roomID, userID int64) (bool, error) {
		return userID == 1, nil
	})

	if !p(context.Background(), Origin{RoomID: -1, UserID: 1}) {
		t.Fatal("admin denied")
	}
	if p(context.Background(), Origin{RoomID: -1, UserID: 2}) {
		t.Fatal("non-admin allowed")
	}
}

func TestSystemAdmin(t *testing.T) {
	ctx := context.Background()
	admins := store.NewMemoryKeyedSet()
	admins.Add(ctx, 9, "op")

	p := SystemAdmin(admins)
	if !p(ctx, Origin{UserID: 9}) {
		t.Fatal("bot admin denied")
	}
	if p(ctx, Origin{UserID: 10}) {
		t.Fatal("non-admin allowed")
	}
}
