// Package gate evaluates ordered permission predicates ahead of every
// mutating bot operation.
package gate

import (
	"context"
	"log"
)

// Origin describes where an interaction came from.
type Origin struct {
	RoomID  int64
	UserID  int64
	Private bool
}

// Predicate decides whether an interaction from origin may proceed. A
// deny is logged by the predicate itself; callers only see the bool.
type Predicate func(ctx context.Context, origin Origin) bool

// AllOf composes predicates in the given order, short-circuiting on
// the first deny. Later predicates are not evaluated.
func AllOf(predicates ...Predicate) Predicate {
	return func(ctx context.Context, origin Origin) bool {
		for _, p := range predicates {
			if !p(ctx, origin) {
				return false
			}
		}
		return true
	}
}

// Membership is the slice of an allow-set the predicates need.
type Membership interface {
	Contains(ctx context.Context, id int64) (bool, error)
}

// RoomEnabled passes when the origin room is in the enabled-rooms set.
func RoomEnabled(rooms Membership) Predicate {
	return func(ctx context.Context, origin Origin) bool {
		ok, err := rooms.Contains(ctx, origin.RoomID)
		if err != nil {
			log.Printf("gate: enabled-room lookup for %d failed: %v", origin.RoomID, err)
			return false
		}
		if !ok {
			log.Printf("gate: room %d is not enabled", origin.RoomID)
		}
		return ok
	}
}

// AdminChecker reports whether a user administers a room, normally
// answered by the chat transport.
type AdminChecker func(ctx context.Context, roomID, userID int64) (bool, error)

// RoomAdmin passes for room administrators. Private one-to-one rooms
// always pass.
func RoomAdmin(isAdmin AdminChecker) Predicate {
	return func(ctx context.Context, origin Origin) bool {
		if origin.Private {
			return true
		}
		ok, err := isAdmin(ctx, origin.RoomID, origin.UserID)
		if err != nil {
			log.Printf("gate: admin lookup for user %d in room %d failed: %v", origin.UserID, origin.RoomID, err)
			return false
		}
		if !ok {
			log.Printf("gate: user %d is not an admin of room %d", origin.UserID, origin.RoomID)
		}
		return ok
	}
}

// SystemAdmin passes when the sender is in the bot-admin set.
func SystemAdmin(admins Membership) Predicate {
	return func(ctx context.Context, origin Origin) bool {
		ok, err := admins.Contains(ctx, origin.UserID)
		if err != nil {
			log.Printf("gate: bot-admin lookup for %d failed: %v", origin.UserID, err)
			return false
		}
		if !ok {
			log.Printf("gate: user %d is not a bot admin", origin.UserID)
		}
		return ok
	}
}
