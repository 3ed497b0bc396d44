package bot

import "context"

// User is a chat participant as reported by the transport.
type User struct {
	ID       int64
	Username string
}

// Room is a chat room. Private marks a one-to-one conversation.
type Room struct {
	ID      int64
	Title   string
	Private bool
}

// Message is an inbound chat message. PhotoID carries the transport
// handle of the largest attached photo, empty when the message has
// none. PinnedNotify points at the message a pin service-notification
// announces.
type Message struct {
	ID           int64
	Room         Room
	From         User
	Text         string
	ReplyTo      *Message
	PhotoID      string
	PinnedNotify *Message
}

// Callback is an inline-button press. Message is the rendering the
// button was attached to.
type Callback struct {
	From    User
	Data    string
	Message *Message
}

// Update is one inbound interaction: either a message or a button
// press, never both.
type Update struct {
	Message  *Message
	Callback *Callback
}

// Button is one inline control attached to a rendering.
type Button struct {
	Label string
	Data  string
}

// Messenger is the slice of the chat transport this service consumes.
// Message delivery, editing and button rendering primitives live
// behind it; implementations are provided outside this module.
type Messenger interface {
	// Send posts a message and returns its ID.
	Send(ctx context.Context, roomID int64, text string, buttons []Button) (int64, error)
	// Reply posts a plain reply to an existing message.
	Reply(ctx context.Context, roomID, messageID int64, text string) error
	Delete(ctx context.Context, roomID, messageID int64) error
	Pin(ctx context.Context, roomID, messageID int64) error
	// PinnedMessageID returns the room's pinned message ID, 0 when
	// nothing is pinned.
	PinnedMessageID(ctx context.Context, roomID int64) (int64, error)
	IsRoomAdmin(ctx context.Context, roomID, userID int64) (bool, error)
	DownloadPhoto(ctx context.Context, photoID string) ([]byte, error)
}
