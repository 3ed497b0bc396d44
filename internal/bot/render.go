package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"raidboard/internal/model"
)

// renderText builds the full state of a raid as one message. The
// bracketed code must stay in the text: replies are resolved back to
// the raid by scanning for it.
func renderText(raid *model.Raid) string {
	var b strings.Builder

	boss := "Unknown boss"
	if raid.Boss != nil {
		boss = raid.Boss.Name
	}
	fmt.Fprintf(&b, "*%s*", boss)
	if raid.Gym != nil {
		fmt.Fprintf(&b, " at *%s*", raid.Gym.Name)
	}
	b.WriteString("\n")

	if raid.Hangout != nil {
		fmt.Fprintf(&b, "Meeting at %s\n", raid.Hangout)
	}
	fmt.Fprintf(&b, "`[%s]`\n", raid.Code)

	if attending := raid.Roster(model.RoleAttending); len(attending) > 0 {
		b.WriteString("\nAttending:\n")
		for _, p := range attending {
			fmt.Fprintf(&b, " - %s\n", p.Username)
		}
	}
	if flyers := raid.Roster(model.RoleFlyer); len(flyers) > 0 {
		b.WriteString("\nFlying in:\n")
		for _, p := range flyers {
			fmt.Fprintf(&b, " - %s ✈\n", p.Username)
		}
	}

	return b.String()
}

func renderButtons(code string) []Button {
	return []Button{
		{Label: "➕", Data: buttonPayload(code, opJoin)},
		{Label: "➖", Data: buttonPayload(code, opLeave)},
		{Label: "✈", Data: buttonPayload(code, opToggleFlyer)},
	}
}

// synchronize replaces the room's visible rendering of the raid.
// oldID is the stale rendering to remove, 0 on the first post.
// replyID is the user reply that triggered the edit, 0 for button
// presses; it is deleted along with the old rendering to keep the
// room uncluttered. Deletion and pin failures are privilege problems
// on the transport side and never fail the operation; only a failed
// post does.
func (s *Service) synchronize(ctx context.Context, raid *model.Raid, roomID, oldID, replyID int64) bool {
	pinned := false
	if oldID != 0 {
		pinnedID, err := s.messenger.PinnedMessageID(ctx, roomID)
		if err != nil {
			log.Printf("pinned message lookup in room %d failed: %v", roomID, err)
		}
		pinned = err == nil && pinnedID == oldID

		if err := s.messenger.Delete(ctx, roomID, oldID); err != nil {
			log.Printf("delete of stale rendering %d in room %d failed: %v", oldID, roomID, err)
		}
	}
	if replyID != 0 {
		if err := s.messenger.Delete(ctx, roomID, replyID); err != nil {
			log.Printf("delete of reply %d in room %d failed: %v", replyID, roomID, err)
		}
	}

	newID, err := s.messenger.Send(ctx, roomID, renderText(raid), renderButtons(raid.Code))
	if err != nil {
		log.Printf("post of raid %s rendering in room %d failed: %v", raid.Code, roomID, err)
		return false
	}

	raid.Rendered = &model.MessageRef{RoomID: roomID, MessageID: newID}
	if err := s.raids.Put(ctx, raid); err != nil {
		log.Printf("store write of rendering ref for raid %s failed: %v", raid.Code, err)
	}

	if pinned {
		if err := s.messenger.Pin(ctx, roomID, newID); err != nil {
			log.Printf("re-pin of raid %s rendering in room %d failed: %v", raid.Code, roomID, err)
		}
	}
	return true
}

// staleRenderingID picks the message the synchronizer should replace:
// the recorded rendering ref when one exists for this room, else the
// message the interaction itself points at.
func staleRenderingID(raid *model.Raid, roomID, fallbackID int64) int64 {
	if raid.Rendered != nil && raid.Rendered.RoomID == roomID {
		return raid.Rendered.MessageID
	}
	return fallbackID
}
