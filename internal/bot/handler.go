// Package bot interprets inbound chat interactions as raid mutations
// and keeps one live rendering of each raid per room.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"raidboard/internal/gate"
	"raidboard/internal/index"
	"raidboard/internal/model"
	"raidboard/internal/recognition"
	"raidboard/internal/store"
)

// subjectMinConfidence is the accept threshold for boss-name replies,
// stricter than the index default.
const subjectMinConfidence = 0.8

// AuditPublisher receives one record per successful mutation. Publish
// failures are logged, never surfaced.
type AuditPublisher interface {
	Publish(ctx context.Context, rec model.InteractionRecord) error
}

// Deps collects everything a Service needs.
type Deps struct {
	SelfID     int64
	Messenger  Messenger
	Raids      store.RaidStore
	Rooms      store.KeyedSet
	Admins     *store.AdminSet
	ScanMuted  store.KeyedSet
	Bosses     *index.Index
	Recognizer recognition.Recognizer
	Audit      AuditPublisher
}

// Service is the edit protocol handler: each interaction becomes at
// most one read-modify-write against the raid store followed by a
// re-rendering.
type Service struct {
	selfID     int64
	messenger  Messenger
	raids      store.RaidStore
	rooms      store.KeyedSet
	admins     *store.AdminSet
	scanMuted  store.KeyedSet
	bosses     *index.Index
	recognizer recognition.Recognizer
	audit      AuditPublisher

	gateRoom       gate.Predicate
	gateModeration gate.Predicate
	gateSystem     gate.Predicate
}

func New(deps Deps) *Service {
	s := &Service{
		selfID:     deps.SelfID,
		messenger:  deps.Messenger,
		raids:      deps.Raids,
		rooms:      deps.Rooms,
		admins:     deps.Admins,
		scanMuted:  deps.ScanMuted,
		bosses:     deps.Bosses,
		recognizer: deps.Recognizer,
		audit:      deps.Audit,
	}

	// Per-operation gate composition, evaluated in declared order.
	s.gateRoom = gate.AllOf(gate.RoomEnabled(deps.Rooms))
	s.gateModeration = gate.AllOf(
		gate.RoomEnabled(deps.Rooms),
		gate.RoomAdmin(deps.Messenger.IsRoomAdmin),
	)
	s.gateSystem = gate.AllOf(gate.SystemAdmin(deps.Admins))

	return s
}

// Run consumes updates until the channel closes or ctx is canceled.
// Each update is processed by its own worker to completion; workers
// for different updates run in parallel, including two touching the
// same raid.
func (s *Service) Run(ctx context.Context, updates <-chan Update) {
	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case u, ok := <-updates:
			if !ok {
				wg.Wait()
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Dispatch(ctx, u)
			}()
		}
	}
}

// Dispatch routes one interaction. The returned bool is a plain
// success signal: every failure path has already been logged and left
// no state change behind.
func (s *Service) Dispatch(ctx context.Context, u Update) bool {
	if u.Callback != nil {
		return s.handleButton(ctx, u.Callback)
	}
	m := u.Message
	if m == nil {
		return false
	}

	switch {
	case m.PinnedNotify != nil:
		return s.handlePinnedNotify(ctx, m)
	case m.PhotoID != "":
		return s.handleScreenshot(ctx, m, m, false)
	case strings.HasPrefix(m.Text, "/"):
		return s.handleCommand(ctx, m)
	case m.ReplyTo != nil && timeReplyPattern.MatchString(m.Text):
		return s.handleSetTime(ctx, m)
	case m.ReplyTo != nil && subjectReplyPattern.MatchString(m.Text):
		return s.handleSetSubject(ctx, m)
	}
	return false
}

func originOf(room Room, user User) gate.Origin {
	return gate.Origin{RoomID: room.ID, UserID: user.ID, Private: room.Private}
}

func (s *Service) handleButton(ctx context.Context, cb *Callback) bool {
	if cb.Message == nil {
		log.Printf("callback without a message arrived")
		return false
	}
	room := cb.Message.Room
	if !s.gateRoom(ctx, originOf(room, cb.From)) {
		return false
	}

	code, op, ok := parseButtonPayload(cb.Data)
	if !ok {
		log.Printf("invalid callback payload %q", cb.Data)
		return false
	}

	raid, err := s.raids.Get(ctx, code)
	if err != nil {
		log.Printf("callback for unknown raid %s: %v", code, err)
		return false
	}

	switch op {
	case opJoin:
		raid.AddParticipant(cb.From.ID, cb.From.Username)
	case opLeave:
		raid.RemoveParticipant(cb.From.ID)
	case opToggleFlyer:
		raid.ToggleFlyer(cb.From.ID, cb.From.Username)
	}

	if err := s.raids.Put(ctx, raid); err != nil {
		log.Printf("store write for raid %s failed: %v", raid.Code, err)
		return false
	}
	s.publishAudit(ctx, raid.Code, room.ID, cb.From.ID, "button:"+op, "")

	oldID := staleRenderingID(raid, room.ID, cb.Message.ID)
	return s.synchronize(ctx, raid, room.ID, oldID, 0)
}

// resolveReply validates that a reply edit targets the bot's own
// rendering and loads the raid its code points at.
func (s *Service) resolveReply(ctx context.Context, m *Message) (*model.Raid, bool) {
	if m.ReplyTo.From.ID != s.selfID {
		log.Printf("reply in room %d does not target the bot", m.Room.ID)
		return nil, false
	}
	code, ok := extractCode(m.ReplyTo.Text)
	if !ok {
		log.Printf("no raid code found in replied message in room %d", m.Room.ID)
		return nil, false
	}
	raid, err := s.raids.Get(ctx, code)
	if err != nil {
		log.Printf("reply for unknown raid %s: %v", code, err)
		return nil, false
	}
	return raid, true
}

func (s *Service) handleSetTime(ctx context.Context, m *Message) bool {
	if !s.gateRoom(ctx, originOf(m.Room, m.From)) {
		return false
	}
	raid, ok := s.resolveReply(ctx, m)
	if !ok {
		return false
	}

	hangout, ok := parseTimeReply(m.Text)
	if !ok {
		log.Printf("time reply %q did not parse", m.Text)
		return false
	}
	raid.Hangout = &hangout

	if err := s.raids.Put(ctx, raid); err != nil {
		log.Printf("store write for raid %s failed: %v", raid.Code, err)
		return false
	}
	s.publishAudit(ctx, raid.Code, m.Room.ID, m.From.ID, "set-time", hangout.String())

	oldID := staleRenderingID(raid, m.Room.ID, m.ReplyTo.ID)
	return s.synchronize(ctx, raid, m.Room.ID, oldID, m.ID)
}

func (s *Service) handleSetSubject(ctx context.Context, m *Message) bool {
	if !s.gateRoom(ctx, originOf(m.Room, m.From)) {
		return false
	}
	raid, ok := s.resolveReply(ctx, m)
	if !ok {
		return false
	}

	name := strings.TrimSpace(m.Text)
	boss := s.bosses.Find(name, subjectMinConfidence)
	if boss == nil {
		log.Printf("no boss resolves for %q", name)
		if err := s.messenger.Reply(ctx, m.Room.ID, m.ID, fmt.Sprintf("Sorry, but I don't know *%s*", name)); err != nil {
			log.Printf("unrecognized-boss notice failed: %v", err)
		}
		return false
	}
	raid.Boss = boss

	if err := s.raids.Put(ctx, raid); err != nil {
		log.Printf("store write for raid %s failed: %v", raid.Code, err)
		return false
	}
	s.publishAudit(ctx, raid.Code, m.Room.ID, m.From.ID, "set-boss", boss.Name)

	oldID := staleRenderingID(raid, m.Room.ID, m.ReplyTo.ID)
	return s.synchronize(ctx, raid, m.Room.ID, oldID, m.ID)
}

// handleScreenshot feeds a photo to the recognizer and, when it is a
// raid, persists and renders the fresh session. forced marks a /scan
// request, which bypasses the room's scan mute.
func (s *Service) handleScreenshot(ctx context.Context, m, photo *Message, forced bool) bool {
	if !s.gateRoom(ctx, originOf(m.Room, m.From)) {
		return false
	}
	if !forced {
		muted, err := s.scanMuted.Contains(ctx, m.Room.ID)
		if err != nil {
			log.Printf("scan-mute lookup for room %d failed: %v", m.Room.ID, err)
			return false
		}
		if muted {
			log.Printf("screenshot scan for room %d is muted", m.Room.ID)
			return false
		}
	}

	img, err := s.messenger.DownloadPhoto(ctx, photo.PhotoID)
	if err != nil {
		log.Printf("photo download in room %d failed: %v", m.Room.ID, err)
		return false
	}

	raid, err := s.recognizer.Recognize(ctx, img)
	if errors.Is(err, recognition.ErrNotRaid) {
		return false
	}
	if err != nil {
		log.Printf("recognition in room %d failed: %v", m.Room.ID, err)
		return false
	}

	if err := s.raids.Put(ctx, raid); err != nil {
		log.Printf("store write for raid %s failed: %v", raid.Code, err)
		return false
	}
	s.publishAudit(ctx, raid.Code, m.Room.ID, m.From.ID, "create", "")

	log.Printf("raid %s created from a screenshot in room %d", raid.Code, m.Room.ID)
	return s.synchronize(ctx, raid, m.Room.ID, 0, 0)
}

// handlePinnedNotify removes the service message announcing a pin,
// but only when the bot itself did the pinning.
func (s *Service) handlePinnedNotify(ctx context.Context, m *Message) bool {
	if !s.gateRoom(ctx, originOf(m.Room, m.From)) {
		return false
	}
	if m.From.ID != s.selfID {
		return false
	}
	if err := s.messenger.Delete(ctx, m.Room.ID, m.ID); err != nil {
		log.Printf("delete of pin notify %d in room %d failed: %v", m.ID, m.Room.ID, err)
		return false
	}
	return true
}

func (s *Service) publishAudit(ctx context.Context, code string, roomID, userID int64, op, detail string) {
	if s.audit == nil {
		return
	}
	rec := model.InteractionRecord{
		RaidCode: code,
		RoomID:   roomID,
		UserID:   userID,
		Op:       op,
		Detail:   detail,
	}
	if err := s.audit.Publish(ctx, rec); err != nil {
		log.Printf("audit publish for raid %s failed: %v", code, err)
	}
}
