package model

import (
	"fmt"
	"math/rand"
	"time"
)

// RaidEncodingVersion is the version tag carried by every stored raid
// record. Bump it when the wire shape of Raid changes.
const RaidEncodingVersion = 1

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the fixed length of a raid code.
const CodeLength = 8

// Role marks how a participant takes part in a raid.
type Role string

const (
	RoleAttending Role = "attending"
	RoleFlyer     Role = "flyer"
)

// Entity is a canonical named thing resolved through an index: a raid
// boss or a gym.
type Entity struct {
	Name string `json:"name"`
}

// Participant is one user signed up for a raid. A user appears in a
// raid's roster at most once.
type Participant struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// DayTime is a wall-clock meeting time without a date.
type DayTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MessageRef identifies the chat message currently rendering a raid.
type MessageRef struct {
	RoomID    int64 `json:"room_id"`
	MessageID int64 `json:"message_id"`
}

// Raid is one tracked event, addressed by its code for the whole of
// its lifetime. It is the unit of storage: mutations load the whole
// record, change it in memory and write the whole record back.
type Raid struct {
	Version int    `json:"version"`
	Code    string `json:"code"`

	Boss *Entity `json:"boss,omitempty"`
	Gym  *Entity `json:"gym,omitempty"`

	Hangout      *DayTime      `json:"hangout,omitempty"`
	Participants []Participant `json:"participants"`

	// Rendered points at the live rendering of this raid, when one
	// has been posted.
	Rendered *MessageRef `json:"rendered,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewRaid mints a raid with a fresh code.
func NewRaid() *Raid {
	return &Raid{
		Version:   RaidEncodingVersion,
		Code:      NewCode(),
		CreatedAt: time.Now(),
	}
}

// NewCode returns a fresh 8-character alphanumeric raid code.
func NewCode() string {
	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// AddParticipant signs a user up as attending. Adding a user who is
// already in the roster leaves the roster unchanged.
func (r *Raid) AddParticipant(userID int64, username string) {
	if r.findParticipant(userID) != nil {
		return
	}
	r.Participants = append(r.Participants, Participant{
		UserID:   userID,
		Username: username,
		Role:     RoleAttending,
	})
}

// RemoveParticipant takes a user out of the roster. Removing an absent
// user is a no-op.
func (r *Raid) RemoveParticipant(userID int64) {
	for i, p := range r.Participants {
		if p.UserID == userID {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return
		}
	}
}

// ToggleFlyer flips a participant between attending and flying in. A
// user not yet in the roster is added as a flyer.
func (r *Raid) ToggleFlyer(userID int64, username string) {
	if p := r.findParticipant(userID); p != nil {
		if p.Role == RoleFlyer {
			p.Role = RoleAttending
		} else {
			p.Role = RoleFlyer
		}
		return
	}
	r.Participants = append(r.Participants, Participant{
		UserID:   userID,
		Username: username,
		Role:     RoleFlyer,
	})
}

// Roster returns the participants holding the given role, in join order.
func (r *Raid) Roster(role Role) []Participant {
	var out []Participant
	for _, p := range r.Participants {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

func (r *Raid) findParticipant(userID int64) *Participant {
	for i := range r.Participants {
		if r.Participants[i].UserID == userID {
			return &r.Participants[i]
		}
	}
	return nil
}
