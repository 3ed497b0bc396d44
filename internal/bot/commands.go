package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"raidboard/internal/store"
)

// handleCommand routes slash commands. Unknown commands are dropped
// without a notice.
func (s *Service) handleCommand(ctx context.Context, m *Message) bool {
	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return false
	}
	// Strip the "@botname" suffix used in group chats.
	cmd, _, _ := strings.Cut(fields[0], "@")

	switch cmd {
	case "/enablechat":
		return s.commandEnableChat(ctx, m)
	case "/disablechat":
		return s.commandDisableChat(ctx, m)
	case "/enablescan":
		return s.commandSetScanMute(ctx, m, false)
	case "/disablescan":
		return s.commandSetScanMute(ctx, m, true)
	case "/addadmin":
		return s.commandAddAdmin(ctx, m)
	case "/removeadmin":
		return s.commandRemoveAdmin(ctx, m)
	case "/scan":
		return s.commandScan(ctx, m)
	}
	return false
}

func (s *Service) commandEnableChat(ctx context.Context, m *Message) bool {
	if !s.gateSystem(ctx, originOf(m.Room, m.From)) {
		return false
	}

	enabled, err := s.rooms.Contains(ctx, m.Room.ID)
	if err != nil {
		log.Printf("enabled-room lookup for %d failed: %v", m.Room.ID, err)
		return false
	}
	if enabled {
		s.replyNotice(ctx, m, "This chat is already enabled")
		return false
	}

	if err := s.rooms.Add(ctx, m.Room.ID, m.Room.Title); err != nil {
		log.Printf("enable room %d failed: %v", m.Room.ID, err)
		return false
	}
	log.Printf("room %d is now enabled", m.Room.ID)
	s.replyNotice(ctx, m, "This chat is now enabled")
	return true
}

func (s *Service) commandDisableChat(ctx context.Context, m *Message) bool {
	if !s.gateSystem(ctx, originOf(m.Room, m.From)) {
		return false
	}

	enabled, err := s.rooms.Contains(ctx, m.Room.ID)
	if err != nil {
		log.Printf("enabled-room lookup for %d failed: %v", m.Room.ID, err)
		return false
	}
	if !enabled {
		s.replyNotice(ctx, m, "This chat is not enabled")
		return false
	}

	if err := s.rooms.Remove(ctx, m.Room.ID); err != nil {
		log.Printf("disable room %d failed: %v", m.Room.ID, err)
		return false
	}
	log.Printf("room %d is no longer enabled", m.Room.ID)
	s.replyNotice(ctx, m, "This chat is no longer enabled")
	return true
}

func (s *Service) commandSetScanMute(ctx context.Context, m *Message, mute bool) bool {
	if !s.gateModeration(ctx, originOf(m.Room, m.From)) {
		return false
	}

	if mute {
		if err := s.scanMuted.Add(ctx, m.Room.ID, ""); err != nil {
			log.Printf("mute scan for room %d failed: %v", m.Room.ID, err)
			return false
		}
		log.Printf("screenshot scan for room %d disabled", m.Room.ID)
		s.replyNotice(ctx, m, "The scan now is disabled")
		return true
	}

	if err := s.scanMuted.Remove(ctx, m.Room.ID); err != nil {
		log.Printf("unmute scan for room %d failed: %v", m.Room.ID, err)
		return false
	}
	log.Printf("screenshot scan for room %d enabled", m.Room.ID)
	s.replyNotice(ctx, m, "The scan now is enabled")
	return true
}

func (s *Service) commandAddAdmin(ctx context.Context, m *Message) bool {
	if !s.gateSystem(ctx, originOf(m.Room, m.From)) {
		return false
	}
	if m.ReplyTo == nil {
		s.replyNotice(ctx, m, "Reply to a message of the user to promote")
		return false
	}
	target := m.ReplyTo.From

	already, err := s.admins.Contains(ctx, target.ID)
	if err != nil {
		log.Printf("bot-admin lookup for %d failed: %v", target.ID, err)
		return false
	}
	if already {
		s.replyNotice(ctx, m, fmt.Sprintf("%s is already a bot admin", target.Username))
		return false
	}

	if err := s.admins.Add(ctx, target.ID, target.Username); err != nil {
		log.Printf("add bot admin %d failed: %v", target.ID, err)
		return false
	}
	log.Printf("user %d is now a bot admin", target.ID)
	s.replyNotice(ctx, m, fmt.Sprintf("%s is now a bot admin", target.Username))
	return true
}

func (s *Service) commandRemoveAdmin(ctx context.Context, m *Message) bool {
	if !s.gateSystem(ctx, originOf(m.Room, m.From)) {
		return false
	}
	if m.ReplyTo == nil {
		s.replyNotice(ctx, m, "Reply to a message of the user to demote")
		return false
	}
	target := m.ReplyTo.From

	if s.admins.IsSuperAdmin(target.ID) {
		log.Printf("user %d is the super admin", target.ID)
		s.replyNotice(ctx, m, fmt.Sprintf("%s is the super admin and cannot be removed", target.Username))
		return false
	}

	present, err := s.admins.Contains(ctx, target.ID)
	if err != nil {
		log.Printf("bot-admin lookup for %d failed: %v", target.ID, err)
		return false
	}
	if !present {
		s.replyNotice(ctx, m, fmt.Sprintf("%s is not a bot admin", target.Username))
		return false
	}

	if err := s.admins.Remove(ctx, target.ID); err != nil {
		if errors.Is(err, store.ErrSuperAdmin) {
			s.replyNotice(ctx, m, fmt.Sprintf("%s is the super admin and cannot be removed", target.Username))
			return false
		}
		log.Printf("remove bot admin %d failed: %v", target.ID, err)
		return false
	}
	log.Printf("user %d is no longer a bot admin", target.ID)
	s.replyNotice(ctx, m, fmt.Sprintf("%s is no longer a bot admin", target.Username))
	return true
}

// commandScan forces recognition on the photo a /scan replies to.
func (s *Service) commandScan(ctx context.Context, m *Message) bool {
	if !s.gateRoom(ctx, originOf(m.Room, m.From)) {
		return false
	}
	if m.ReplyTo == nil || m.ReplyTo.PhotoID == "" {
		s.replyNotice(ctx, m, "It must be a reply to a screenshot")
		return false
	}
	log.Printf("scan requested in room %d by user %d", m.Room.ID, m.From.ID)
	return s.handleScreenshot(ctx, m, m.ReplyTo, true)
}

func (s *Service) replyNotice(ctx context.Context, m *Message, text string) {
	if err := s.messenger.Reply(ctx, m.Room.ID, m.ID, text); err != nil {
		log.Printf("notice in room %d failed: %v", m.Room.ID, err)
	}
}
